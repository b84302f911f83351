package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

// CourseRepository defines persistence for course documents and their
// embedded lectures.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	// FindAll returns course summaries with the lectures projected out.
	FindAll(ctx context.Context) ([]domain.Course, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	PushLecture(ctx context.Context, id primitive.ObjectID, lecture domain.Lecture) error
	PullLecture(ctx context.Context, id primitive.ObjectID, lectureID primitive.ObjectID) error
}
