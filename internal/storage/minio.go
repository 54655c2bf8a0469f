// filepath: internal/storage/minio.go
package storage

import (
	"blog/internal/config"
	"blog/internal/logging"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioBackend keeps uploads in an S3-compatible bucket.
type MinioBackend struct {
	client *minio.Client
	bucket string
}

// NewMinioBackend connects to the endpoint and creates the bucket if it is missing.
func NewMinioBackend(ctx context.Context, cfg config.MinioConfig) (*MinioBackend, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("could not check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		logging.Log.Infof("Creating upload bucket '%s'", cfg.Bucket)
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("could not create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioBackend{client: client, bucket: cfg.Bucket}, nil
}

func (b *MinioBackend) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (int64, error) {
	if !ValidObjectName(name) {
		return 0, fmt.Errorf("invalid object name: %q", name)
	}
	info, err := b.client.PutObject(ctx, b.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return 0, fmt.Errorf("could not upload object: %w", err)
	}
	return info.Size, nil
}

func (b *MinioBackend) Open(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error) {
	if !ValidObjectName(name) {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	obj, err := b.client.GetObject(ctx, b.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, mapMinioError(err)
	}
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, ObjectInfo{}, mapMinioError(err)
	}
	return obj, ObjectInfo{
		Name:        name,
		Size:        st.Size,
		ContentType: st.ContentType,
		ModTime:     st.LastModified,
	}, nil
}

func (b *MinioBackend) Delete(ctx context.Context, name string) error {
	if err := b.client.RemoveObject(ctx, b.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return mapMinioError(err)
	}
	return nil
}

func (b *MinioBackend) List(ctx context.Context) ([]ObjectInfo, error) {
	objects := make([]ObjectInfo, 0)
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("could not list objects: %w", obj.Err)
		}
		objects = append(objects, ObjectInfo{
			Name:        obj.Key,
			Size:        obj.Size,
			ContentType: obj.ContentType,
			ModTime:     obj.LastModified,
		})
	}
	return objects, nil
}

func mapMinioError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return err
}
