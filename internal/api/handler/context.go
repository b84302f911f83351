package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/marketplace-api/internal/api/middleware"
	"github.com/coursehub/marketplace-api/internal/core/domain"
)

// currentUser extracts the authenticated user attached by the Auth
// middleware. Its absence means the route was wired without the
// middleware; reject rather than panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	return user, nil
}
