// filepath: internal/config/config.go
package config

import (
	"blog/internal/shared"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Supported session store backends.
const (
	SessionBackendDatabase = "database"
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
)

// Supported upload storage backends.
const (
	StorageBackendLocal = "local"
	StorageBackendMinio = "minio"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Session  SessionConfig  `toml:"session"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`

	AdminPassword      string `toml:"-"` // Not loaded from file, set by CLI/env
	ResetAdminPassword bool   `toml:"-"` // Not loaded from file, set by CLI/env
	SessionSecret      string `toml:"-"` // Runtime secret (from env, flag, or file)

	MaxUploadSizeBytes int64         `toml:"-"` // Runtime computed value
	RememberDuration   time.Duration `toml:"-"` // Runtime computed value
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	MaxUploadSize string `toml:"max_upload_size"` // e.g. "8MB", "512KB"
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// SessionConfig selects the session store and controls the session cookie.
type SessionConfig struct {
	Backend      string      `toml:"backend"`       // database, memory or redis
	RememberFor  string      `toml:"remember_for"`  // lifetime of "remember me" sessions, e.g. "30d"
	CookieSecure bool        `toml:"cookie_secure"` // set the Secure attribute (HTTPS deployments)
	Secret       string      `toml:"secret"`        // Persisted cookie signing secret
	Redis        RedisConfig `toml:"redis"`
}

// RedisConfig holds the connection settings for the redis session backend.
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// StorageConfig holds the settings for uploaded images.
type StorageConfig struct {
	Backend   string      `toml:"backend"`    // local or minio
	UploadDir string      `toml:"upload_dir"` // local directory (local backend)
	Minio     MinioConfig `toml:"minio"`
}

// MinioConfig holds the S3-compatible object storage settings.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// AuthConfig holds account seeding options.
type AuthConfig struct {
	DisableDemoUser bool `toml:"disable_demo_user"` // skip seeding 'user' / '123'
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist the auto-generated session secret.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trying to save the config: %w", shared.ErrorCreateFile)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("trying to save the config: %w", shared.ErrorEncodeFile)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes and durations.
func (c *Config) ParseAndValidate() error {
	if c.Server.MaxUploadSize == "" {
		c.Server.MaxUploadSize = "8MB"
	}
	sizeBytes, err := shared.ParseSize(c.Server.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	c.MaxUploadSizeBytes = sizeBytes

	if c.Session.RememberFor == "" {
		c.Session.RememberFor = "30d"
	}
	remember, err := shared.ParseDuration(c.Session.RememberFor)
	if err != nil {
		return fmt.Errorf("invalid remember_for: %w", err)
	}
	if remember <= 0 {
		return fmt.Errorf("invalid remember_for: must be greater than zero")
	}
	c.RememberDuration = remember

	if c.Session.Backend == "" {
		c.Session.Backend = SessionBackendDatabase
	}
	switch c.Session.Backend {
	case SessionBackendDatabase, SessionBackendMemory:
	case SessionBackendRedis:
		if c.Session.Redis.Addr == "" {
			return fmt.Errorf("session backend 'redis' requires session.redis.addr")
		}
		if c.Session.Redis.KeyPrefix == "" {
			c.Session.Redis.KeyPrefix = "blog:session:"
		}
	default:
		return fmt.Errorf("unknown session backend: %s", c.Session.Backend)
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageBackendLocal
	}
	if c.Storage.UploadDir == "" {
		c.Storage.UploadDir = "uploads"
	}
	switch c.Storage.Backend {
	case StorageBackendLocal:
	case StorageBackendMinio:
		if c.Storage.Minio.Endpoint == "" || c.Storage.Minio.Bucket == "" {
			return fmt.Errorf("storage backend 'minio' requires storage.minio.endpoint and storage.minio.bucket")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}

	return nil
}
