// filepath: internal/storage/storage_test.go
package storage

import (
	"blog/internal/config"
	"blog/internal/shared"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{ sent bool }

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("connection reset")
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Success", func(t *testing.T) {
		path := filepath.Join(dir, "ok.txt")
		n, err := SaveFile(strings.NewReader("hello"), path)
		require.NoError(t, err)
		assert.Equal(t, int64(5), n)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("Failed Write Removes Partial File", func(t *testing.T) {
		path := filepath.Join(dir, "broken.txt")
		n, err := SaveFile(&failingReader{}, path)
		assert.Error(t, err)
		assert.Equal(t, int64(0), n)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Missing Directory", func(t *testing.T) {
		_, err := SaveFile(strings.NewReader("x"), filepath.Join(dir, "nope", "file.txt"))
		assert.Error(t, err)
	})
}

func TestValidObjectName(t *testing.T) {
	assert.True(t, ValidObjectName("01HZX3J5Q8Y7K2M4N6P8R0T2V4.png"))
	assert.True(t, ValidObjectName("abc"))
	assert.False(t, ValidObjectName("../etc/passwd"))
	assert.False(t, ValidObjectName("a/b.png"))
	assert.False(t, ValidObjectName(""))
	assert.False(t, ValidObjectName(".hidden"))
}

func TestLocalBackend(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "uploads")
	b, err := NewLocalBackend(root)
	require.NoError(t, err)

	n, err := b.Save(ctx, "01ABC.png", strings.NewReader("png-bytes"), -1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	t.Run("Open", func(t *testing.T) {
		rc, info, err := b.Open(ctx, "01ABC.png")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
		assert.Equal(t, int64(9), info.Size)
		assert.Equal(t, "image/png", info.ContentType)
	})

	t.Run("Open Missing", func(t *testing.T) {
		_, _, err := b.Open(ctx, "missing.png")
		assert.ErrorIs(t, err, ErrObjectNotFound)
		_, _, err = b.Open(ctx, "../secret")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("Save Rejects Traversal", func(t *testing.T) {
		_, err := b.Save(ctx, "../escape.png", strings.NewReader("x"), -1, "")
		assert.ErrorIs(t, err, shared.ErrInvalidName)
	})

	t.Run("List And Delete", func(t *testing.T) {
		require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0755))

		objects, err := b.List(ctx)
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.Equal(t, "01ABC.png", objects[0].Name)

		require.NoError(t, b.Delete(ctx, "01ABC.png"))
		assert.ErrorIs(t, b.Delete(ctx, "01ABC.png"), ErrObjectNotFound)
	})
}

func TestNew(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Backend: config.StorageBackendLocal, UploadDir: t.TempDir()}}
	b, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &LocalBackend{}, b)

	cfg.Storage.Backend = "tape"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestMinioBackend_Offline(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty Endpoint", func(t *testing.T) {
		_, err := NewMinioBackend(ctx, config.MinioConfig{Bucket: "blog"})
		assert.Error(t, err)
	})

	client, err := minio.New("localhost:9000", &minio.Options{})
	require.NoError(t, err)
	b := &MinioBackend{client: client, bucket: "blog"}

	t.Run("Invalid Names Never Reach The Bucket", func(t *testing.T) {
		_, err := b.Save(ctx, "../escape.png", strings.NewReader("x"), 1, "image/png")
		assert.Error(t, err)

		_, _, err = b.Open(ctx, "a/b.png")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("Error Mapping", func(t *testing.T) {
		assert.ErrorIs(t, mapMinioError(minio.ErrorResponse{Code: "NoSuchKey"}), ErrObjectNotFound)

		denied := minio.ErrorResponse{Code: "AccessDenied"}
		assert.Equal(t, error(denied), mapMinioError(denied))
	})
}

func TestMinioBackend(t *testing.T) {
	endpoint := os.Getenv("BLOG_TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("BLOG_TEST_MINIO_ENDPOINT not set; skipping minio backend test")
	}
	ctx := context.Background()
	b, err := NewMinioBackend(ctx, config.MinioConfig{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("BLOG_TEST_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("BLOG_TEST_MINIO_SECRET_KEY"),
		Bucket:    "blog-test",
	})
	require.NoError(t, err)

	_, err = b.Save(ctx, "01TEST.txt", strings.NewReader("hi"), 2, "text/plain")
	require.NoError(t, err)

	rc, info, err := b.Open(ctx, "01TEST.txt")
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, int64(2), info.Size)

	require.NoError(t, b.Delete(ctx, "01TEST.txt"))
	_, _, err = b.Open(ctx, "01TEST.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
