package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehub/marketplace-api/internal/core/domain"
	"github.com/coursehub/marketplace-api/internal/core/ports"
)

// UserLoader is the subset of the user repository the gate needs.
type UserLoader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ContextUserKey is the echo context key under which Auth stores the
// authenticated *domain.User.
const ContextUserKey = "user"

// SessionCookie is the name of the HTTP-only cookie carrying the session
// token.
const SessionCookie = "token"

// Auth authenticates the request from the session cookie and attaches the
// loaded user to the context. The user is re-read on every request, so a
// structurally valid token for a deleted account is still rejected.
func Auth(tokens ports.TokenService, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			userID, err := tokens.VerifySession(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			oid, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			user, err := users.FindByID(c.Request().Context(), oid)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}
