package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"qbank/internal/config"
)

// Store manages question persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

// Open initializes or connects to the question database described by cfg.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, newError(ErrInitialization, "open", "", fmt.Errorf("ensure directories: %w", err))
	}
	return OpenPath(context.Background(), cfg.DatabasePath())
}

// OpenPath initializes or connects to the database at path, creating the
// schema on first use and upgrading older schema versions in place.
func OpenPath(ctx context.Context, path string) (*Store, error) {
	ctx = ensureContext(ctx)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, newError(ErrInitialization, "open", "", fmt.Errorf("create database directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, newError(ErrInitialization, "open", "", fmt.Errorf("open sqlite db: %w", err))
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, newError(ErrInitialization, "open", "", fmt.Errorf("apply pragma %q: %w", pragma, execErr))
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, newError(ErrInitialization, "open", "", err)
	}

	return store, nil
}

// Path returns the database file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
