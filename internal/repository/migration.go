// filepath: internal/repository/migration.go
package repository

import (
	"blog/internal/db/migrations"
	"blog/internal/logging"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

// The migrations are embedded, so goose reads them from the root of the FS.
const migrationsDir = "."

func configureGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// latestMigrationVersion returns the highest version among the embedded migrations.
func latestMigrationVersion() (int64, error) {
	if err := configureGoose(); err != nil {
		return 0, err
	}
	all, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := all.Last()
	if err != nil {
		return 0, fmt.Errorf("no migrations found: %w", err)
	}
	return last.Version, nil
}

// SchemaVersion returns the current version recorded by goose.
func (s *Repository) SchemaVersion() (int64, error) {
	if err := configureGoose(); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(s.DB)
}

// hasVersionTable reports whether goose has ever touched this database.
func (s *Repository) hasVersionTable() (bool, error) {
	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ValidateSchema fails if the database is behind the embedded migrations.
func (s *Repository) ValidateSchema() error {
	latest, err := latestMigrationVersion()
	if err != nil {
		return err
	}

	exists, err := s.hasVersionTable()
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("database schema is outdated (version 0, expected %d); run 'blog migrate up'", latest)
	}

	current, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("database schema is outdated (version %d, expected %d); run 'blog migrate up'", current, latest)
	}
	return nil
}

// EnsureSchemaBootstrapped migrates a brand new database to the latest version.
// Databases that already carry a goose version table are left alone so that
// upgrades stay an explicit 'migrate up' step.
func (s *Repository) EnsureSchemaBootstrapped() error {
	exists, err := s.hasVersionTable()
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists {
		return nil
	}

	if err := configureGoose(); err != nil {
		return err
	}
	logging.Log.Info("Empty database detected, applying all migrations.")
	if err := goose.Up(s.DB, migrationsDir); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return nil
}

// RunMigration executes a goose command ("up", "down" or "status").
func (s *Repository) RunMigration(command string) error {
	if err := configureGoose(); err != nil {
		return err
	}

	var gooseErr error
	switch command {
	case "up":
		gooseErr = goose.Up(s.DB, migrationsDir)
	case "down":
		gooseErr = goose.Down(s.DB, migrationsDir)
	case "status":
		gooseErr = goose.Status(s.DB, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}

	if gooseErr != nil {
		return fmt.Errorf("migration failed: %w", gooseErr)
	}
	return nil
}
