// filepath: internal/repository/repository.go
package repository

import (
	"blog/internal/config"
	"blog/internal/logging"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver
)

// Repository is the persistence layer for posts, users, engagement and sessions.
// It is safe for concurrent use; every method runs as its own statement or transaction.
type Repository struct {
	DB      *sql.DB
	Builder squirrel.StatementBuilderType // SQL Query Builder

	// Clock supplies timestamps and drives session expiry checks.
	Clock func() time.Time
}

// NewRepository opens (or creates) the SQLite database named in the config.
// The schema is not touched here; see EnsureSchemaBootstrapped and ValidateSchema.
func NewRepository(cfg *config.Config) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Database.Path)
	logging.Log.Debugf("NewRepository: opening database '%s'", cfg.Database.Path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; serializing connections avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:      db,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Clock:   time.Now,
	}, nil
}

// Close closes the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

// BeginTx starts a new transaction.
func (s *Repository) BeginTx(ctx context.Context) (*Tx, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, builder: s.Builder}, nil
}

func (s *Repository) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
