package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/skyboxlabs/skybox/internal/fileid"
	"github.com/skyboxlabs/skybox/internal/model"
	"github.com/skyboxlabs/skybox/internal/repository"
	"github.com/skyboxlabs/skybox/internal/storage"
)

var (
	// ErrEmptyFile is returned when an upload body contains zero bytes.
	ErrEmptyFile = errors.New("file is empty")

	// ErrSaveFailed is returned when the upload stream could not be
	// persisted. The partial blob has already been cleaned up.
	ErrSaveFailed = errors.New("failed to save file")

	// ErrBlobMissing means a metadata row exists but its blob does not.
	// This is an invariant violation, not a NotFound.
	ErrBlobMissing = errors.New("blob missing for existing file record")
)

type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Save streams body into blob storage under a freshly generated id and, on
// success, records the metadata row. The caller resolves the display name and
// caps the body size before calling Save.
//
// Failure behavior keeps the record/blob invariant: if the stream fails or
// yields zero bytes, the partial blob is deleted and no row is ever written.
// If the row insert fails after a successful blob write, the orphaned blob is
// logged and kept; reconciliation is out of scope.
func (s *FileService) Save(ctx context.Context, name string, body io.Reader) (*model.File, error) {
	id := fileid.New()

	size, err := s.storage.Save(ctx, id, body)
	if err != nil {
		slog.Error("failed to save blob", "error", err, "file_id", id)
		s.removeBlob(ctx, id)
		return nil, ErrSaveFailed
	}

	if size == 0 {
		s.removeBlob(ctx, id)
		return nil, ErrEmptyFile
	}

	created := time.Now().Unix()
	file := &model.File{
		ID:      id,
		Name:    name,
		Size:    size,
		Created: &created,
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		// The blob is durable but has no row. Keep it and flag the
		// inconsistency; deleting here could race a duplicate-id insert.
		slog.Error("failed to create file record, blob orphaned",
			"error", err, "file_id", id, "size", size)
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

// removeBlob is the rollback path for failed uploads. Cleanup failure is
// logged but never escalates past the original error.
func (s *FileService) removeBlob(ctx context.Context, id string) {
	err := s.storage.Delete(ctx, id)
	if err != nil {
		slog.Error("failed to delete blob during cleanup", "error", err, "file_id", id)
	}
}

// Info returns the metadata row for id.
// Returns repository.ErrFileNotFound when no row exists.
func (s *FileService) Info(ctx context.Context, id string) (*model.File, error) {
	return s.fileRepo.ByID(id)
}

// Get returns the metadata row together with a reader over the stored bytes.
// The caller owns closing the reader. A row without a blob is surfaced as
// ErrBlobMissing rather than masked as NotFound.
func (s *FileService) Get(ctx context.Context, id string) (*model.File, io.ReadCloser, error) {
	file, err := s.fileRepo.ByID(id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			slog.Error("file record exists but blob is missing", "file_id", id)
			return nil, nil, ErrBlobMissing
		}
		return nil, nil, fmt.Errorf("failed to open blob %s: %w", id, err)
	}

	return file, rc, nil
}
