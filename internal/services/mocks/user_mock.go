// filepath: internal/services/mocks/user_mock.go
package mocks

import (
	"blog/internal/config"
	"blog/internal/services"
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of services.UserService
type MockUserService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetUsers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserService) InitializeUsers(ctx context.Context, cfg *config.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}
