package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const queryTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	namespace TEXT NOT NULL,
	key       TEXT NOT NULL,
	value     INTEGER NOT NULL,
	PRIMARY KEY (namespace, key)
)`

// SQLite stores flag overrides in a preferences table. Reads go straight to
// the database, so Reload has nothing to refresh.
type SQLite struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db, path: path, logger: logger}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// GetBoolean implements Store. Query failures are logged and yield def.
func (s *SQLite) GetBoolean(namespace, key string, def bool) bool {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var v bool
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&v)
	switch {
	case err == nil:
		return v
	case errors.Is(err, sql.ErrNoRows):
		return def
	default:
		s.logger.Warn("store: sqlite read failed, using default", "key", key, "err", err)
		return def
	}
}

// SetBoolean implements Editor.
func (s *SQLite) SetBoolean(namespace, key string, value bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
		namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove implements Editor.
func (s *SQLite) Remove(namespace, key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE namespace = ? AND key = ?`,
		namespace, key,
	)
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Reload is a no-op.
func (s *SQLite) Reload() error { return nil }

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
