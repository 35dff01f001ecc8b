// Package postgres provides the deal_outcomes store: a pgx-backed connection
// pool and schema management using golang-migrate with migrations embedded in
// the binary.
package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/turtacn/DealLens/migrations"
)

// ─────────────────────────────────────────────────────────────────────────────
// URL-based helpers for the migrate CLI path
// ─────────────────────────────────────────────────────────────────────────────

// MigrateURL rewrites a postgres:// or postgresql:// URL to the pgx5:// scheme
// the golang-migrate pgx driver registers. Other URLs are returned unchanged.
func MigrateURL(dbURL string) string {
	for _, p := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dbURL, p) {
			return "pgx5://" + strings.TrimPrefix(dbURL, p)
		}
	}
	return dbURL
}

func newMigrate(dbURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, MigrateURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations. No pending migrations is not
// an error.
func RunMigrations(dbURL string) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// RollbackMigration rolls back steps migrations.
func RollbackMigration(dbURL string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be greater than 0, got %d", steps)
	}

	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("no migrations to roll back")
		}
		return fmt.Errorf("failed to rollback %d step(s): %w", steps, err)
	}
	return nil
}

// MigrationStatus returns the applied version and dirty flag. A database with
// no migrations applied reports version 0.
func MigrationStatus(dbURL string) (version uint, dirty bool, err error) {
	m, err := newMigrate(dbURL)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

//Personal.AI order the ending
