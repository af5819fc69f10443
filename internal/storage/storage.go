package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fleet-service/internal/config"
)

// ErrNotFound is returned by Open and Delete when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// Storage keeps uploaded document bodies under slash-separated keys.
type Storage interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
}

// New builds the storage backend selected by STORAGE_DRIVER.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocal(cfg.LocalDir)
	case config.StorageDriverS3:
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
