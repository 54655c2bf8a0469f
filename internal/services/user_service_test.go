// filepath: internal/services/user_service_test.go
package services

import (
	"blog/internal/config"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_InitializeUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds Admin And Demo User", func(t *testing.T) {
		env := setupTestEnv(t)
		svc := NewUserService(env.repo)

		require.NoError(t, svc.InitializeUsers(ctx, &config.Config{AdminPassword: "password"}))

		users, err := svc.GetUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"admin", "user"}, users)

		ok, err := svc.VerifyCredentials(ctx, "admin", "password")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = svc.VerifyCredentials(ctx, "user", "123")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Demo User Can Be Disabled", func(t *testing.T) {
		env := setupTestEnv(t)
		svc := NewUserService(env.repo)

		cfg := &config.Config{AdminPassword: "password", Auth: config.AuthConfig{DisableDemoUser: true}}
		require.NoError(t, svc.InitializeUsers(ctx, cfg))

		users, err := svc.GetUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"admin"}, users)
	})

	t.Run("Existing Admin Keeps Password Unless Reset", func(t *testing.T) {
		env := setupTestEnv(t)
		svc := NewUserService(env.repo)
		require.NoError(t, svc.InitializeUsers(ctx, &config.Config{AdminPassword: "first"}))

		require.NoError(t, svc.InitializeUsers(ctx, &config.Config{AdminPassword: "second"}))
		ok, err := svc.VerifyCredentials(ctx, "admin", "first")
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, svc.InitializeUsers(ctx, &config.Config{AdminPassword: "second", ResetAdminPassword: true}))
		ok, err = svc.VerifyCredentials(ctx, "admin", "second")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Reset Without Password Fails", func(t *testing.T) {
		env := setupTestEnv(t)
		svc := NewUserService(env.repo)
		require.NoError(t, svc.InitializeUsers(ctx, &config.Config{AdminPassword: "first"}))

		err := svc.InitializeUsers(ctx, &config.Config{ResetAdminPassword: true})
		assert.Error(t, err)
	})
}

func TestUserService_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	svc := NewUserService(env.repo)

	_, err := svc.CreateUser(ctx, "", "pw")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateUser(ctx, "bob", "")
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.CreateUser(ctx, "bob", "pw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.CreateUser(ctx, "bob", "other")
	require.NoError(t, err)
	assert.False(t, created)

	ok, err := svc.VerifyCredentials(ctx, "bob", "")
	require.NoError(t, err)
	assert.False(t, ok)

	deleted, err := svc.DeleteUser(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestUserService_PasswordLength(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	svc := NewUserService(env.repo)

	tooLong := strings.Repeat("x", 80)
	created, err := svc.CreateUser(ctx, "carol", tooLong)
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, created)

	exists, err := env.repo.UserExists(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, exists)

	created, err = svc.CreateUser(ctx, "carol", strings.Repeat("x", 72))
	require.NoError(t, err)
	assert.True(t, created, "72 bytes is still accepted")

	require.NoError(t, svc.InitializeUsers(ctx, &config.Config{AdminPassword: "first"}))
	err = svc.InitializeUsers(ctx, &config.Config{AdminPassword: tooLong, ResetAdminPassword: true})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_DefaultAdminPassword(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	svc := NewUserService(env.repo)

	require.NoError(t, svc.InitializeUsers(ctx, &config.Config{}))

	ok, err := svc.VerifyCredentials(ctx, "admin", DefaultAdminPassword)
	require.NoError(t, err)
	assert.True(t, ok)
}
