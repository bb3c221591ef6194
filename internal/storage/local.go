package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage stores one file per blob id under a data directory.
type LocalStorage struct {
	dataDir string
}

func NewLocalStorage(dataDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	return &LocalStorage{dataDir: dataDir}, nil
}

// Save streams r to disk in bounded chunks, never buffering the whole
// payload. The partial file is left in place on error so the caller's
// rollback path can observe and delete it.
func (s *LocalStorage) Save(ctx context.Context, id string, r io.Reader) (int64, error) {
	f, err := os.Create(s.path(id))
	if err != nil {
		return 0, fmt.Errorf("failed to create blob file: %w", err)
	}

	buf := make([]byte, copyChunkSize)
	size, err := io.CopyBuffer(f, r, buf)
	if err != nil {
		f.Close()
		return size, fmt.Errorf("failed to write blob: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return size, fmt.Errorf("failed to sync blob: %w", err)
	}

	if err := f.Close(); err != nil {
		return size, fmt.Errorf("failed to close blob: %w", err)
	}

	return size, nil
}

func (s *LocalStorage) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", id, err)
	}

	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	return nil
}

func (s *LocalStorage) path(id string) string {
	// Ids are generated letters-only, but never trust them as path input.
	return filepath.Join(s.dataDir, filepath.Base(id))
}
