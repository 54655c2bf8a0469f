// filepath: internal/services/post_service.go
package services

import (
	"blog/internal/logging"
	"blog/internal/media"
	"blog/internal/models"
	"blog/internal/repository"
	"blog/internal/shared"
	"blog/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// UploadPathPrefix is prepended to stored object names to form a post's image_path.
const UploadPathPrefix = "uploads/"

var _ PostService = (*postService)(nil)

// postService handles posts, likes, comments, views and analytics.
type postService struct {
	Repo          *repository.Repository
	Storage       storage.Backend
	MaxUploadSize int64
}

// NewPostService creates a new PostService.
func NewPostService(repo *repository.Repository, backend storage.Backend, maxUploadSize int64) *postService {
	return &postService{Repo: repo, Storage: backend, MaxUploadSize: maxUploadSize}
}

// ListPosts returns all posts, newest first.
func (s *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.Repo.GetAllPosts(ctx)
}

// GetPost returns a post with likes and comments without recording a view.
func (s *postService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrPostNotFound) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return nil, err
	}
	return post, nil
}

// ViewPost returns a post and records one view of it. Missing posts record nothing.
func (s *postService) ViewPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddView(ctx, id); err != nil {
		if errors.Is(err, shared.ErrPostNotFound) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return nil, err
	}
	return post, nil
}

// CreatePost stores an optional image and then the post. Title and content are required.
func (s *postService) CreatePost(ctx context.Context, author, title, content string, image *ImageUpload) (int64, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("%w: title and content are required", ErrValidation)
	}

	var imagePath, objectName string
	if image != nil && image.Filename != "" {
		name, err := s.storeImage(ctx, image)
		if err != nil {
			return 0, err
		}
		objectName = name
		imagePath = UploadPathPrefix + name
	}

	id, err := s.Repo.CreatePost(ctx, models.PostCreateArgs{
		Title:     title,
		Content:   content,
		Author:    author,
		ImagePath: imagePath,
	})
	if err != nil {
		if objectName != "" {
			if delErr := s.Storage.Delete(ctx, objectName); delErr != nil {
				logging.Log.Warnf("PostService: could not remove upload '%s' after failed insert: %v", objectName, delErr)
			}
		}
		return 0, err
	}
	logging.Log.Debugf("PostService: '%s' created post %d", author, id)
	return id, nil
}

// uploadName builds a fresh ULID object name. The original file extension is
// kept when it names the detected format (".jpeg" for a JPEG, ".PNG" for a PNG);
// a missing, unsafe or mismatching extension is replaced by the canonical one.
func uploadName(filename string, info media.ImageInfo) string {
	id := ulid.Make().String()
	ext := filepath.Ext(filename)
	if ext != "" && storage.ValidObjectName(id+ext) {
		if ct, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil && ct == info.ContentType {
			return id + ext
		}
	}
	return id + info.Extension
}

// storeImage validates the upload and saves it under a fresh ULID name.
func (s *postService) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
	if s.MaxUploadSize > 0 && image.Size > s.MaxUploadSize {
		return "", fmt.Errorf("%w: %d bytes exceeds the limit of %d", ErrTooLarge, image.Size, s.MaxUploadSize)
	}

	info, err := media.InspectImage(image.File)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if _, err := image.File.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("could not rewind upload: %w", err)
	}

	name := uploadName(image.Filename, info)
	size := image.Size
	if size <= 0 {
		size = -1
	}
	if _, err := s.Storage.Save(ctx, name, image.File, size, info.ContentType); err != nil {
		return "", fmt.Errorf("could not store upload: %w", err)
	}
	return name, nil
}

// DeletePost removes the post row. Engagement rows and the image are kept.
func (s *postService) DeletePost(ctx context.Context, id int64) (bool, error) {
	return s.Repo.DeletePost(ctx, id)
}

// ToggleLike flips the like of username on the post.
func (s *postService) ToggleLike(ctx context.Context, id int64, username string) (bool, error) {
	liked, err := s.Repo.ToggleLike(ctx, id, username)
	if errors.Is(err, shared.ErrPostNotFound) {
		return false, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}
	return liked, err
}

// AddComment appends a comment. Blank content is rejected.
func (s *postService) AddComment(ctx context.Context, id int64, username, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	if err := s.Repo.AddComment(ctx, id, username, content); err != nil {
		if errors.Is(err, shared.ErrPostNotFound) {
			return fmt.Errorf("%w: post %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// GetPostAnalytics returns analytics for a post owned by requester.
// A missing post is reported as ErrForbidden, the same as a post owned by someone else.
func (s *postService) GetPostAnalytics(ctx context.Context, id int64, requester string) (*models.PostWithAnalytics, error) {
	post, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrPostNotFound) {
			return nil, fmt.Errorf("%w: access denied", ErrForbidden)
		}
		return nil, err
	}
	if post.Author != requester {
		return nil, fmt.Errorf("%w: access denied", ErrForbidden)
	}

	analytics, err := s.Repo.GetPostAnalytics(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PostWithAnalytics{Post: *post, Analytics: *analytics}, nil
}

// GetUserAnalytics returns username's posts with their analytics, newest first.
func (s *postService) GetUserAnalytics(ctx context.Context, username string) ([]models.PostWithAnalytics, error) {
	return s.Repo.GetUserPostsAnalytics(ctx, username)
}

// OpenUpload opens a stored image by object name.
func (s *postService) OpenUpload(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	rc, info, err := s.Storage.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, fmt.Errorf("%w: upload %s", ErrNotFound, name)
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}
