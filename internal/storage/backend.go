// filepath: internal/storage/backend.go
package storage

import (
	"blog/internal/config"
	"context"
	"fmt"
	"io"
	"time"
)

// ObjectInfo describes a stored upload.
type ObjectInfo struct {
	Name        string
	Size        int64
	ContentType string
	ModTime     time.Time
}

// Backend stores uploaded images under flat names.
type Backend interface {
	// Save writes r under name and returns the number of bytes stored.
	// size may be -1 when unknown.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (int64, error)
	// Open returns a reader for name or ErrObjectNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

// New builds the backend selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendLocal, "":
		return NewLocalBackend(cfg.Storage.UploadDir)
	case config.StorageBackendMinio:
		return NewMinioBackend(ctx, cfg.Storage.Minio)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
