package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehub/marketplace-api/internal/core/domain"
	"github.com/coursehub/marketplace-api/internal/core/service"
)

type stubUserLoader struct {
	users map[primitive.ObjectID]*domain.User
}

func (s *stubUserLoader) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func authFixture(t *testing.T) (*service.TokenService, *stubUserLoader, *domain.User) {
	t.Helper()
	tokens := service.NewTokenService("secret", time.Hour, time.Minute)
	user := &domain.User{
		ID:    primitive.NewObjectID(),
		Name:  "alice",
		Email: "alice@example.com",
		Role:  domain.RoleUser,
	}
	loader := &stubUserLoader{users: map[primitive.ObjectID]*domain.User{user.ID: user}}
	return tokens, loader, user
}

func sessionRequest(t *testing.T, tokens *service.TokenService, userID string) *http.Request {
	t.Helper()
	token, err := tokens.IssueSession(userID)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	return req
}

func TestAuth_ValidCookie(t *testing.T) {
	e := echo.New()
	tokens, loader, user := authFixture(t)

	req := sessionRequest(t, tokens, user.ID.Hex())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens, loader)(func(c echo.Context) error {
		called = true
		got, _ := c.Get(ContextUserKey).(*domain.User)
		if got == nil || got.ID != user.ID {
			t.Fatalf("authenticated user not attached to context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingCookie(t *testing.T) {
	e := echo.New()
	tokens, loader, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, loader)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	e := echo.New()
	tokens, loader, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, loader)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

// A signature-valid token for a user deleted after issuance must still be
// rejected with 401.
func TestAuth_DeletedUser(t *testing.T) {
	e := echo.New()
	tokens, loader, user := authFixture(t)

	req := sessionRequest(t, tokens, user.ID.Hex())
	delete(loader.users, user.ID)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, loader)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
