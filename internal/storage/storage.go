// Package storage holds document blobs outside the database. Blobs are
// addressed by a generated path; the database row referencing a blob is only
// written after the blob write succeeds.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"assetledger/internal/config"
	"assetledger/internal/logger"

	"github.com/spf13/afero"
)

// ErrObjectNotFound is returned by Open when no blob exists at the path.
var ErrObjectNotFound = errors.New("storage: object not found")

// Storage defines the blob operations the document store needs.
type Storage interface {
	// Save stores the reader's content at path, replacing any existing blob.
	Save(ctx context.Context, path string, r io.Reader) error

	// Open returns a reader for the blob at path. Callers must close it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}

// New builds the backend selected by STORAGE_BACKEND.
func New(ctx context.Context, c *config.Config) (Storage, error) {
	switch c.StorageBackend {
	case "s3":
		logger.Get().Infow("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(ctx, S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	case "local", "":
		logger.Get().Infow("initializing local storage", "dir", c.StorageLocalDir)
		if err := afero.NewOsFs().MkdirAll(c.StorageLocalDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		return NewFSStorage(afero.NewBasePathFs(afero.NewOsFs(), c.StorageLocalDir)), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
