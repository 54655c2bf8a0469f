// filepath: internal/services/user_service.go
package services

import (
	"blog/internal/config"
	"blog/internal/logging"
	"blog/internal/repository"
	"context"
	"fmt"
	"strings"
)

const (
	demoUsername = "user"
	demoPassword = "123"

	// DefaultAdminPassword seeds a new admin account when no password is configured.
	DefaultAdminPassword = "password"
)

// validatePassword rejects passwords the bcrypt hash cannot take.
func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(password) > repository.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, repository.MaxPasswordBytes)
	}
	return nil
}

var _ UserService = (*userService)(nil)

// userService handles business logic for user management.
type userService struct {
	Repo *repository.Repository
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository) *userService {
	return &userService{Repo: repo}
}

// VerifyCredentials checks a username/password pair. Blank input never matches.
func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	return s.Repo.VerifyUser(ctx, username, password)
}

// CreateUser creates a user. It returns false when the username is already taken.
func (s *userService) CreateUser(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(username) > 64 {
		return false, fmt.Errorf("%w: username must be at most 64 characters", ErrValidation)
	}
	if err := validatePassword(password); err != nil {
		return false, err
	}
	logging.Log.Debugf("UserService: Attempting to create user '%s'", username)
	return s.Repo.CreateUser(ctx, username, password)
}

// DeleteUser deletes a user. The admin account is never deleted.
func (s *userService) DeleteUser(ctx context.Context, username string) (bool, error) {
	logging.Log.Debugf("UserService: Deleting user '%s'", username)
	return s.Repo.DeleteUser(ctx, username)
}

// GetUsers returns all usernames sorted lexicographically.
func (s *userService) GetUsers(ctx context.Context) ([]string, error) {
	return s.Repo.GetAllUsers(ctx)
}

// InitializeUsers seeds the admin account (and the demo account unless disabled)
// and applies a requested admin password reset.
func (s *userService) InitializeUsers(ctx context.Context, cfg *config.Config) error {
	if err := s.initializeAdminUser(ctx, cfg); err != nil {
		return err
	}
	if cfg.Auth.DisableDemoUser {
		return nil
	}
	exists, err := s.Repo.UserExists(ctx, demoUsername)
	if err != nil {
		return fmt.Errorf("failed to check for demo user: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := s.Repo.CreateUser(ctx, demoUsername, demoPassword); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	logging.Log.Infof("Demo user '%s' created.", demoUsername)
	return nil
}

// initializeAdminUser ensures the 'admin' user exists on startup and handles password resets.
func (s *userService) initializeAdminUser(ctx context.Context, cfg *config.Config) error {
	adminExists, err := s.Repo.UserExists(ctx, repository.AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	if !adminExists {
		return s.createAdminUser(ctx, cfg.AdminPassword)
	}

	if cfg.ResetAdminPassword {
		return s.resetAdminPassword(ctx, cfg.AdminPassword)
	}

	return nil
}

// createAdminUser creates the initial 'admin' user.
func (s *userService) createAdminUser(ctx context.Context, password string) error {
	if password == "" {
		password = DefaultAdminPassword
		logging.Log.Warnf("No admin password provided. 'admin' uses the default password; change it with --reset_pw.")
	}
	if err := validatePassword(password); err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}

	if _, err := s.Repo.CreateUser(ctx, repository.AdminUsername, password); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logging.Log.Info("Admin user created successfully.")
	return nil
}

// resetAdminPassword updates the admin's password based on startup flags.
func (s *userService) resetAdminPassword(ctx context.Context, password string) error {
	if password == "" {
		return fmt.Errorf("cannot reset admin password: --reset_pw is true but no --password or BLOG_PASSWORD was provided")
	}
	if err := validatePassword(password); err != nil {
		return fmt.Errorf("cannot reset admin password: %w", err)
	}
	if err := s.Repo.UpdateUserPassword(ctx, repository.AdminUsername, password); err != nil {
		return fmt.Errorf("failed to reset admin password: %w", err)
	}
	logging.Log.Info("Admin password has been reset.")
	return nil
}
