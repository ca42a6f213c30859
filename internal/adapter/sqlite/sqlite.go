// Package sqlite implements the preference store on a local SQLite file,
// the on-device equivalent of a shared preferences file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"weighttracker/internal/domain"
)

// DB wraps a *sql.DB and implements domain.PreferenceStore.
type DB struct {
	sql *sql.DB
}

var _ domain.PreferenceStore = (*DB)(nil)

// Open creates the database file if needed, applies migrations, and returns
// a ready store.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		return nil, err
	}

	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{sql: s}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Get returns the value stored under namespace and key.
func (d *DB) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var v string
	err := d.sql.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE namespace = ? AND key = ?;`,
		namespace, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Put upserts value under namespace and key.
func (d *DB) Put(ctx context.Context, namespace, key, value string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO preferences (namespace, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		namespace, key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
