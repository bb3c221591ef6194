package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/skyboxlabs/skybox/internal/config"
)

// ErrBlobNotFound is returned by Open when no blob exists for the id.
var ErrBlobNotFound = errors.New("blob not found")

// copyChunkSize bounds how much of an upload is held in memory at once.
const copyChunkSize = 32 * 1024

// Storage defines the interface for blob storage operations. Blobs are keyed
// by the file id and written exactly once; there is no update path.
type Storage interface {
	// Save streams r into the blob keyed by id and returns the number of
	// bytes written. A partially written blob may remain after an error;
	// callers are expected to Delete it.
	Save(ctx context.Context, id string, r io.Reader) (int64, error)

	// Open returns a reader over the stored blob.
	// Returns ErrBlobNotFound if no blob exists for the id.
	Open(ctx context.Context, id string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a blob that does not exist is not
	// an error.
	Delete(ctx context.Context, id string) error
}

// New creates the storage backend selected by config.
// "local" stores blobs as files under DataDir; "s3" targets any
// S3-compatible service (AWS S3, MinIO, R2, etc.).
func New(c *config.Config) (Storage, error) {
	switch c.StorageBackend {
	case "local":
		return NewLocalStorage(c.DataDir)
	case "s3":
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
