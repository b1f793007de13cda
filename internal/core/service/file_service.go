package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

// UploadsPathPrefix is the public path under which blobs are served.
const UploadsPathPrefix = "/uploads/"

type FileService struct {
	files    ports.FileRepository
	problems ports.ProblemRepository
	blobs    ports.BlobStore
	cleaner  ports.BlobCleaner
	maxBytes int64
	log      zerolog.Logger
}

func NewFileService(
	files ports.FileRepository,
	problems ports.ProblemRepository,
	blobs ports.BlobStore,
	cleaner ports.BlobCleaner,
	maxBytes int64,
	log zerolog.Logger,
) *FileService {
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxUploadBytes
	}
	return &FileService{
		files:    files,
		problems: problems,
		blobs:    blobs,
		cleaner:  cleaner,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Upload stores the attachment bytes and records its metadata.
func (s *FileService) Upload(ctx context.Context, actor *domain.PublicUser, in ports.UploadInput) (*domain.File, error) {
	ext := strings.ToLower(filepath.Ext(in.OriginalName))
	if !allowedExtension(ext) {
		return nil, domain.ErrInvalidFileType
	}
	if in.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	if in.ProblemID <= 0 {
		return nil, domain.NewValidationError("Problem ID is required")
	}
	if _, err := s.problems.FindByID(ctx, in.ProblemID); err != nil {
		return nil, err
	}

	// The declared size comes from the client; the read is bounded anyway.
	data, err := io.ReadAll(io.LimitReader(in.Content, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	mime := mimetype.Detect(data).String()
	key := "file-" + uuid.NewString() + ext
	if err := s.blobs.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mime); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	created, err := s.files.Create(ctx, &domain.File{
		Filename:     key,
		OriginalName: filepath.Base(in.OriginalName),
		Path:         UploadsPathPrefix + key,
		StorageKey:   key,
		ProblemID:    in.ProblemID,
		UploadedBy:   actor.ID,
		FileSize:     int64(len(data)),
		MimeType:     mime,
		Description:  in.Description,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.cleaner.Enqueue(key)
		return nil, err
	}

	s.log.Info().
		Int64("file_id", created.ID).
		Int64("problem_id", created.ProblemID).
		Int64("size", created.FileSize).
		Str("mime", mime).
		Msg("file uploaded")
	return created, nil
}

func (s *FileService) ListByProblem(ctx context.Context, problemID int64) ([]*domain.File, error) {
	return s.files.ListByProblem(ctx, problemID)
}

// Open returns the metadata and a reader over the stored bytes. The caller
// closes the reader.
func (s *FileService) Open(ctx context.Context, id int64) (*domain.File, io.ReadCloser, error) {
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(ctx, f.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return f, rc, nil
}

func (s *FileService) OpenKey(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return nil, domain.ErrBlobNotFound
	}
	return s.blobs.Open(ctx, key)
}

// Delete removes the metadata right away; the blob is removed by the cleaner.
// The uploader or an admin may delete.
func (s *FileService) Delete(ctx context.Context, actor *domain.PublicUser, id int64) error {
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if f.UploadedBy != actor.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrAccessDenied
	}
	if err := s.files.Delete(ctx, id); err != nil {
		return err
	}
	s.cleaner.Enqueue(f.StorageKey)
	s.log.Info().Int64("file_id", id).Int64("deleted_by", actor.ID).Msg("file deleted")
	return nil
}

func allowedExtension(ext string) bool {
	for _, allowed := range domain.AllowedFileExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
