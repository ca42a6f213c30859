// Package memory implements an in-memory preference store for development and testing.
package memory

import (
	"context"
	"sync"

	"weighttracker/internal/domain"
)

// DB implements an in-memory preference storage. Nothing survives a restart.
type DB struct {
	mu    sync.Mutex
	prefs map[string]map[string]string
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		prefs: make(map[string]map[string]string),
	}
}

// Ensure interfaces are met.
var _ domain.PreferenceStore = (*DB)(nil)

// Get returns the value stored under namespace and key.
func (db *DB) Get(_ context.Context, namespace, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.prefs[namespace][key]
	return v, ok, nil
}

// Put stores value under namespace and key, replacing any previous value.
func (db *DB) Put(_ context.Context, namespace, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	ns, ok := db.prefs[namespace]
	if !ok {
		ns = make(map[string]string)
		db.prefs[namespace] = ns
	}
	ns[key] = value
	return nil
}

// Close is a no-op kept so the memory DB can stand in for persistent stores.
func (db *DB) Close() error { return nil }
