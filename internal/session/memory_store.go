// filepath: internal/session/memory_store.go
package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type memoryEntry struct {
	username  string
	expiresAt *time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return e.expiresAt != nil && !now.Before(*e.expiresAt)
}

// MemoryStore keeps sessions in process memory. Everything is lost on restart.
// Expiry is evaluated against the injected clock, so the cache runs without a janitor.
type MemoryStore struct {
	cache *cache.Cache
	clock func() time.Time
}

// NewMemoryStore creates an empty store. A nil clock means time.Now.
func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
		clock: clock,
	}
}

func (s *MemoryStore) Create(_ context.Context, sessionID, username string, expiresAt *time.Time) error {
	s.cache.Set(sessionID, memoryEntry{username: username, expiresAt: expiresAt}, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, bool, error) {
	v, found := s.cache.Get(sessionID)
	if !found {
		return "", false, nil
	}
	entry := v.(memoryEntry)
	if entry.expired(s.clock()) {
		s.cache.Delete(sessionID)
		return "", false, nil
	}
	return entry.username, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}

func (s *MemoryStore) CleanupExpired(_ context.Context) (int64, error) {
	now := s.clock()
	var removed int64
	for id, item := range s.cache.Items() {
		if entry, ok := item.Object.(memoryEntry); ok && entry.expired(now) {
			s.cache.Delete(id)
			removed++
		}
	}
	return removed, nil
}

// Close drops all sessions.
func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}
