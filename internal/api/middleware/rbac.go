package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

// AdminOnly enforces the admin role on routes already behind Auth. The
// rejection names the caller's actual role for diagnostics.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, _ := c.Get(ContextUserKey).(*domain.User)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
		}
		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("%s is not allowed to access this resource", user.Role))
		}
		return next(c)
	}
}
