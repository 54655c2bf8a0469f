// filepath: internal/services/services_test.go
package services

import (
	"blog/internal/config"
	"blog/internal/repository"
	"blog/internal/storage"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	repo    *repository.Repository
	uploads *storage.LocalBackend
	now     time.Time
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{Database: config.DatabaseConfig{Path: filepath.Join(dir, "test_service.db")}}

	repo, err := repository.NewRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureSchemaBootstrapped())

	uploads, err := storage.NewLocalBackend(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	env := &testEnv{repo: repo, uploads: uploads, now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	repo.Clock = func() time.Time { return env.now }
	return env
}
