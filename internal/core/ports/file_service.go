package ports

import (
	"context"
	"io"

	"github.com/codeforge/problemhub/internal/core/domain"
)

// FileRepository defines persistence operations for file metadata.
type FileRepository interface {
	Create(ctx context.Context, f *domain.File) (*domain.File, error)
	FindByID(ctx context.Context, id int64) (*domain.File, error)
	Delete(ctx context.Context, id int64) error
	ListByProblem(ctx context.Context, problemID int64) ([]*domain.File, error)
}

// BlobStore keeps the bytes of uploaded files. Open returns
// domain.ErrBlobNotFound for a missing key.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// BlobCleaner removes blobs in the background.
type BlobCleaner interface {
	Enqueue(key string)
}

// UploadInput carries one multipart upload.
type UploadInput struct {
	ProblemID    int64
	Description  string
	OriginalName string
	Size         int64
	Content      io.Reader
}

type FileService interface {
	Upload(ctx context.Context, actor *domain.PublicUser, in UploadInput) (*domain.File, error)
	ListByProblem(ctx context.Context, problemID int64) ([]*domain.File, error)
	Open(ctx context.Context, id int64) (*domain.File, io.ReadCloser, error)
	OpenKey(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, actor *domain.PublicUser, id int64) error
}
