// filepath: internal/session/session.go
// Package session provides the pluggable stores that map session ids to usernames.
package session

import (
	"blog/internal/config"
	"context"
	"fmt"
	"time"
)

// Store persists sessions. A nil expiresAt means the session never expires on
// the server side and only ends when the cookie is dropped or the user logs out.
type Store interface {
	Create(ctx context.Context, sessionID, username string, expiresAt *time.Time) error
	// Get returns the username bound to sessionID. Expired sessions are removed
	// and reported as absent.
	Get(ctx context.Context, sessionID string) (string, bool, error)
	Delete(ctx context.Context, sessionID string) error
	// CleanupExpired removes every expired session and returns how many were removed.
	CleanupExpired(ctx context.Context) (int64, error)
	Close() error
}

// New builds the store selected by cfg.Session.Backend.
func New(cfg *config.Config, repo Repository, clock func() time.Time) (Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendDatabase, "":
		return NewDatabaseStore(repo), nil
	case config.SessionBackendMemory:
		return NewMemoryStore(clock), nil
	case config.SessionBackendRedis:
		return NewRedisStore(context.Background(), cfg.Session.Redis, clock)
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}
}
