package history

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the in-memory SQLite database backing the session
// history. Nothing survives a process restart; the store only mirrors
// the in-memory state model of a page view.
func Open(ctx context.Context, name string) (*sqlx.DB, error) {
	dsn := "file::memory:?cache=shared"
	if name != "" {
		dsn = fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return db, nil
}

// Migrate applies the history schema from the given migration source.
// The driver instance is used directly to avoid DSN parsing issues with
// in-memory SQLite.
func Migrate(db *sqlx.DB, sourcePath string) error {
	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourcePath, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
