// filepath: internal/repository/session_repo.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
)

// CreateSession stores a session. A nil expiresAt means the session lives as long
// as the browser keeps the cookie. An existing id is overwritten.
func (s *Repository) CreateSession(ctx context.Context, sessionID, username string, expiresAt *time.Time) error {
	var expiry any
	if expiresAt != nil {
		expiry = expiresAt.Unix()
	}

	query, args, err := s.Builder.Insert("sessions").
		Columns("session_id", "username", "created_at", "expires_at").
		Values(sessionID, username, s.now().Unix(), expiry).
		Suffix("ON CONFLICT(session_id) DO UPDATE SET username = excluded.username, created_at = excluded.created_at, expires_at = excluded.expires_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return storageErr("create session", err)
	}
	return nil
}

// GetSession returns the username bound to sessionID. Expired sessions are
// deleted and reported as absent.
func (s *Repository) GetSession(ctx context.Context, sessionID string) (string, bool, error) {
	query, args, err := s.Builder.Select("username", "expires_at").
		From("sessions").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var username string
	var expiresAt sql.NullInt64
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&username, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, storageErr("get session", err)
	}

	if expiresAt.Valid && expiresAt.Int64 <= s.now().Unix() {
		if err := s.DeleteSession(ctx, sessionID); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return username, true, nil
}

// DeleteSession removes a session. Unknown ids are ignored.
func (s *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	query, args, err := s.Builder.Delete("sessions").Where(squirrel.Eq{"session_id": sessionID}).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return storageErr("delete session", err)
	}
	return nil
}

// CleanupExpiredSessions deletes every session whose expiry has passed and
// returns how many were removed.
func (s *Repository) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	query, args, err := s.Builder.Delete("sessions").
		Where(squirrel.And{
			squirrel.NotEq{"expires_at": nil},
			squirrel.LtOrEq{"expires_at": s.now().Unix()},
		}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storageErr("cleanup sessions", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("cleanup sessions", err)
	}
	return n, nil
}
