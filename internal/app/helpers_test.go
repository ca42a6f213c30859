package app_test

import (
	"context"
	"sync"
	"time"
)

// fakeClock is a settable clock for day-boundary tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock(day string) *fakeClock {
	t, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		panic(err)
	}
	return &fakeClock{t: t.Add(9 * time.Hour)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) nextDay() { c.t = c.t.AddDate(0, 0, 1) }

// mockPrefs is a map-backed PreferenceStore whose methods can be overridden.
type mockPrefs struct {
	mu    sync.Mutex
	data  map[string]string
	getFn func(ctx context.Context, namespace, key string) (string, bool, error)
	putFn func(ctx context.Context, namespace, key, value string) error
	puts  int
}

func newMockPrefs() *mockPrefs {
	return &mockPrefs{data: make(map[string]string)}
}

func (m *mockPrefs) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, namespace, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[namespace+"/"+key]
	return v, ok, nil
}

func (m *mockPrefs) Put(ctx context.Context, namespace, key, value string) error {
	m.mu.Lock()
	m.puts++
	m.mu.Unlock()
	if m.putFn != nil {
		return m.putFn(ctx, namespace, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[namespace+"/"+key] = value
	return nil
}

func ptr(v float64) *float64 { return &v }
