// filepath: internal/services/mocks/sessions_mock.go
package mocks

import (
	"blog/internal/services/auth"
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockSessions is a mock implementation of auth.Sessions
type MockSessions struct {
	mock.Mock
}

var _ auth.Sessions = (*MockSessions)(nil)

func (m *MockSessions) Login(ctx context.Context, w http.ResponseWriter, username, password string, remember bool) (bool, error) {
	args := m.Called(ctx, w, username, password, remember)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessions) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	args := m.Called(ctx, w, r)
	return args.Error(0)
}

func (m *MockSessions) CurrentUser(ctx context.Context, r *http.Request) (string, bool, error) {
	args := m.Called(ctx, r)
	return args.String(0), args.Bool(1), args.Error(2)
}
