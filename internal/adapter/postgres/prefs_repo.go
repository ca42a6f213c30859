package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttracker/internal/domain"
)

var _ domain.PreferenceStore = (*DB)(nil)

// Get returns the value stored under namespace and key.
func (d *DB) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var v string
	err := d.sql.QueryRowContext(ctx,
		"SELECT value FROM preferences WHERE namespace = $1 AND key = $2;",
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
		"INSERT INTO preferences (namespace, key, value, updated_at) VALUES ($1, $2, $3, $4) ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;",
		namespace, key, value, time.Now().UTC(),
	)
	return err
}
