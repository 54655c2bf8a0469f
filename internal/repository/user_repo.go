// filepath: internal/repository/user_repo.go
package repository

import (
	"blog/internal/logging"
	"blog/internal/shared"
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"golang.org/x/crypto/bcrypt"
)

// AdminUsername is the account that can never be deleted.
const AdminUsername = "admin"

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// VerifyUser checks the credentials against the stored bcrypt hash.
func (s *Repository) VerifyUser(ctx context.Context, username, password string) (bool, error) {
	query, args, err := s.Builder.Select("password_hash").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return false, err
	}

	var stored string
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storageErr("verify user", err)
	}

	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, nil
}

// CreateUser stores a new user with a bcrypt-hashed password.
// It returns false without touching the store when the username is taken.
func (s *Repository) CreateUser(ctx context.Context, username, password string) (bool, error) {
	logging.Log.Debugf("CreateUser: Hashing password for '%s'", username)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	query, args, err := s.Builder.Insert("users").
		Columns("username", "password_hash").
		Values(username, string(hashed)).
		ToSql()
	if err != nil {
		return false, err
	}

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			logging.Log.Debugf("CreateUser: '%s' already exists", username)
			return false, nil
		}
		return false, storageErr("create user", err)
	}
	return true, nil
}

// DeleteUser removes a user. The admin account is never removed.
func (s *Repository) DeleteUser(ctx context.Context, username string) (bool, error) {
	if username == AdminUsername {
		return false, nil
	}

	query, args, err := s.Builder.Delete("users").Where(squirrel.Eq{"username": username}).ToSql()
	if err != nil {
		return false, err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, storageErr("delete user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("delete user", err)
	}
	return n > 0, nil
}

// GetAllUsers returns every username in lexicographic order.
func (s *Repository) GetAllUsers(ctx context.Context) ([]string, error) {
	query, args, err := s.Builder.Select("username").From("users").OrderBy("username ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	users := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageErr("list users", err)
		}
		users = append(users, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// UserExists checks if a user with the given username exists.
func (s *Repository) UserExists(ctx context.Context, username string) (bool, error) {
	query, args, err := s.Builder.Select("1").From("users").Where(squirrel.Eq{"username": username}).ToSql()
	if err != nil {
		return false, err
	}
	var one int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storageErr("user exists", err)
	}
	return true, nil
}

// UpdateUserPassword replaces a user's password with a fresh bcrypt hash.
func (s *Repository) UpdateUserPassword(ctx context.Context, username, password string) error {
	logging.Log.Debugf("UpdateUserPassword: Hashing new password for user '%s'", username)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	query, args, err := s.Builder.Update("users").
		Set("password_hash", string(hashed)).
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return storageErr("update password", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update password", err)
	}
	if n == 0 {
		return shared.ErrUserNotFound
	}
	return nil
}
