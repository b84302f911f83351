package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	handler(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Success {
		t.Fatalf("error envelope must have success=false")
	}
	return rec.Code, resp.Message
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"wrong old password", domain.ErrPasswordIncorrect, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"course not found", domain.ErrCourseNotFound, http.StatusNotFound},
		{"lecture not found", domain.ErrLectureNotFound, http.StatusNotFound},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict},
		{"duplicate playlist item", domain.ErrPlaylistDuplicate, http.StatusConflict},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest},
		{"stale reset token", domain.ErrResetTokenInvalid, http.StatusBadRequest},
		{"reset throttled", domain.ErrTooManyResetRequests, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("updating document"), domain.ErrUserNotFound)
	code, _ := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("wrapped domain error must still map, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusForbidden, "user is not allowed to access this resource"))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if !strings.Contains(msg, "not allowed") {
		t.Fatalf("message not carried through: %q", msg)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if strings.Contains(msg, "mongo") {
		t.Fatalf("internal detail leaked to client: %q", msg)
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.JSON(http.StatusOK, map[string]bool{"success": true}); err != nil {
		t.Fatalf("priming response: %v", err)
	}
	before := rec.Body.String()

	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	handler(errors.New("late failure"), c)

	if rec.Body.String() != before {
		t.Fatalf("committed response was rewritten")
	}
}
