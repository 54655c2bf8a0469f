// filepath: internal/session/redis_store.go
package session

import (
	"blog/internal/config"
	"blog/internal/logging"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisValue struct {
	Username  string `json:"username"`
	ExpiresAt *int64 `json:"expires_at,omitempty"`
}

// RedisStore keeps sessions in redis. Remembered sessions carry a TTL so redis
// evicts them on its own; browser sessions have no TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
	clock  func() time.Time
}

// NewRedisStore connects to redis and verifies the connection with a PING.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, clock func() time.Time) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	logging.Log.Infof("Session store connected to redis at %s", cfg.Addr)
	return newRedisStoreWithClient(client, cfg.KeyPrefix, clock), nil
}

func newRedisStoreWithClient(client *redis.Client, prefix string, clock func() time.Time) *RedisStore {
	if clock == nil {
		clock = time.Now
	}
	return &RedisStore{client: client, prefix: prefix, clock: clock}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Create(ctx context.Context, sessionID, username string, expiresAt *time.Time) error {
	value := redisValue{Username: username}
	var ttl time.Duration
	if expiresAt != nil {
		ttl = expiresAt.Sub(s.clock())
		if ttl <= 0 {
			// Already expired.
			return s.Delete(ctx, sessionID)
		}
		unix := expiresAt.Unix()
		value.ExpiresAt = &unix
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get session: %w", err)
	}

	var value redisValue
	if err := json.Unmarshal(data, &value); err != nil {
		return "", false, fmt.Errorf("decode session: %w", err)
	}
	if value.ExpiresAt != nil && *value.ExpiresAt <= s.clock().Unix() {
		if err := s.Delete(ctx, sessionID); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return value.Username, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// CleanupExpired is a no-op because redis evicts keys by TTL.
func (s *RedisStore) CleanupExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
