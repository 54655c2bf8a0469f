// filepath: internal/housekeeping/interfaces.go
package housekeeping

import (
	"blog/internal/storage"
	"context"
)

// SessionSweeper removes expired sessions.
type SessionSweeper interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// PostImages lists the image paths still referenced by posts.
// This decouples the housekeeping logic from the concrete database implementation.
type PostImages interface {
	GetImagePaths(ctx context.Context) ([]string, error)
}

// UploadStore defines the storage methods required by the housekeeping tasks.
type UploadStore interface {
	List(ctx context.Context) ([]storage.ObjectInfo, error)
	Delete(ctx context.Context, name string) error
}
