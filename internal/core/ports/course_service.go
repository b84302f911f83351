package ports

import (
	"context"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

// CourseService implements course and lecture content management.
type CourseService interface {
	Create(ctx context.Context, title, description, category, createdBy string, poster FileInput) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	// Get returns the course with its lectures and counts the view.
	Get(ctx context.Context, courseID string) (*domain.Course, error)
	Delete(ctx context.Context, courseID string) error

	AddLecture(ctx context.Context, courseID, title, description string, video FileInput) (*domain.Course, error)
	DeleteLecture(ctx context.Context, courseID, lectureID string) error
}
