package ports

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence for user account documents.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatar domain.Media) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error

	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error
	// ConsumeResetToken atomically matches an unexpired reset-token hash,
	// installs the new password hash and clears both reset fields in a
	// single update. Returns domain.ErrResetTokenInvalid when no document
	// matches, which also covers a second use of the same token.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) error

	PushPlaylistItem(ctx context.Context, id primitive.ObjectID, item domain.PlaylistItem) error
	// PullPlaylistItem removes the course from the playlist if present;
	// removing an absent course is a no-op, not an error.
	PullPlaylistItem(ctx context.Context, id primitive.ObjectID, courseID primitive.ObjectID) error
}
