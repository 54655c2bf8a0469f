// filepath: internal/config/config_test.go
package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		cfg := &Config{
			Server:  ServerConfig{MaxUploadSize: "10MB"},
			Session: SessionConfig{RememberFor: "7d", Backend: SessionBackendMemory},
		}
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, int64(10485760), cfg.MaxUploadSizeBytes)
		assert.Equal(t, 7*24*time.Hour, cfg.RememberDuration)
		assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	})

	t.Run("Default Fallback", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, "8MB", cfg.Server.MaxUploadSize)
		assert.Equal(t, int64(8388608), cfg.MaxUploadSizeBytes)
		assert.Equal(t, 30*24*time.Hour, cfg.RememberDuration)
		assert.Equal(t, SessionBackendDatabase, cfg.Session.Backend)
		assert.Equal(t, StorageBackendLocal, cfg.Storage.Backend)
		assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	})

	t.Run("Invalid Upload Size", func(t *testing.T) {
		cfg := &Config{Server: ServerConfig{MaxUploadSize: "NotASize"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid max_upload_size")
	})

	t.Run("Zero Remember Duration", func(t *testing.T) {
		cfg := &Config{Session: SessionConfig{RememberFor: "0"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid remember_for")
	})

	t.Run("Unknown Session Backend", func(t *testing.T) {
		cfg := &Config{Session: SessionConfig{Backend: "memcached"}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown session backend")
	})

	t.Run("Redis Requires Address", func(t *testing.T) {
		cfg := &Config{Session: SessionConfig{Backend: SessionBackendRedis}}
		assert.Error(t, cfg.ParseAndValidate())

		cfg.Session.Redis.Addr = "localhost:6379"
		assert.NoError(t, cfg.ParseAndValidate())
		assert.Equal(t, "blog:session:", cfg.Session.Redis.KeyPrefix)
	})

	t.Run("Minio Requires Endpoint And Bucket", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Backend: StorageBackendMinio}}
		assert.Error(t, cfg.ParseAndValidate())

		cfg.Storage.Minio = MinioConfig{Endpoint: "localhost:9000", Bucket: "blog"}
		assert.NoError(t, cfg.ParseAndValidate())
	})
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 9000},
		Database: DatabaseConfig{Path: "blog.db"},
		Session:  SessionConfig{Secret: "abc123"},
		// Runtime-only values must not be persisted.
		AdminPassword: "secret",
	}
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", loaded.Server.Host)
	assert.Equal(t, 9000, loaded.Server.Port)
	assert.Equal(t, "blog.db", loaded.Database.Path)
	assert.Equal(t, "abc123", loaded.Session.Secret)
	assert.Empty(t, loaded.AdminPassword)
}
