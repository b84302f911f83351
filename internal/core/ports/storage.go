package ports

import (
	"context"
	"io"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

// FileInput carries one uploaded file from the transport layer into a
// service without coupling services to multipart handling.
type FileInput struct {
	Name    string
	Content io.Reader
}

// MediaStorage abstracts the external object-storage/CDN service that
// holds avatars, course posters and lecture videos.
type MediaStorage interface {
	// Upload stores the file under the given folder and returns the
	// storage key plus the public URL it is retrievable from.
	Upload(ctx context.Context, folder string, file FileInput) (domain.Media, error)
	Delete(ctx context.Context, id string) error
}
