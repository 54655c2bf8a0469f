// filepath: internal/services/mocks/post_mock.go
package mocks

import (
	"blog/internal/models"
	"blog/internal/services"
	"blog/internal/storage"
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockPostService is a mock implementation of services.PostService
type MockPostService struct {
	mock.Mock
}

var _ services.PostService = (*MockPostService)(nil)

func (m *MockPostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ViewPost(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, author, title, content string, image *services.ImageUpload) (int64, error) {
	args := m.Called(ctx, author, title, content, image)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostService) ToggleLike(ctx context.Context, id int64, username string) (bool, error) {
	args := m.Called(ctx, id, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, id int64, username, content string) error {
	args := m.Called(ctx, id, username, content)
	return args.Error(0)
}

func (m *MockPostService) GetPostAnalytics(ctx context.Context, id int64, requester string) (*models.PostWithAnalytics, error) {
	args := m.Called(ctx, id, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostWithAnalytics), args.Error(1)
}

func (m *MockPostService) GetUserAnalytics(ctx context.Context, username string) ([]models.PostWithAnalytics, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostWithAnalytics), args.Error(1)
}

func (m *MockPostService) OpenUpload(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
