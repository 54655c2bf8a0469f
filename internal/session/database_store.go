// filepath: internal/session/database_store.go
package session

import (
	"context"
	"time"
)

// Repository is the subset of the persistence layer used by DatabaseStore.
type Repository interface {
	CreateSession(ctx context.Context, sessionID, username string, expiresAt *time.Time) error
	GetSession(ctx context.Context, sessionID string) (string, bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// DatabaseStore keeps sessions in the sessions table so they survive restarts.
type DatabaseStore struct {
	repo Repository
}

// NewDatabaseStore wraps the repository.
func NewDatabaseStore(repo Repository) *DatabaseStore {
	return &DatabaseStore{repo: repo}
}

func (s *DatabaseStore) Create(ctx context.Context, sessionID, username string, expiresAt *time.Time) error {
	return s.repo.CreateSession(ctx, sessionID, username, expiresAt)
}

func (s *DatabaseStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	return s.repo.GetSession(ctx, sessionID)
}

func (s *DatabaseStore) Delete(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSession(ctx, sessionID)
}

func (s *DatabaseStore) CleanupExpired(ctx context.Context) (int64, error) {
	return s.repo.CleanupExpiredSessions(ctx)
}

// Close is a no-op; the repository is owned by the caller.
func (s *DatabaseStore) Close() error {
	return nil
}
