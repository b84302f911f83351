package ports

import (
	"context"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

// UserService implements the account operations: registration, sessions,
// password lifecycle, profile, playlist and the admin surface. Methods
// that establish a session return the signed token alongside the user so
// the handler can set the cookie.
type UserService interface {
	Register(ctx context.Context, name, email, password string, avatar FileInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error
	UpdateProfile(ctx context.Context, userID, name, email string) error
	UpdateAvatar(ctx context.Context, userID string, avatar FileInput) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	AddToPlaylist(ctx context.Context, userID, courseID string) error
	RemoveFromPlaylist(ctx context.Context, userID, courseID string) error

	ListUsers(ctx context.Context) ([]domain.User, error)
	ToggleRole(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
}
