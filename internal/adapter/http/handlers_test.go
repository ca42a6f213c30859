package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapthttp "weighttracker/internal/adapter/http"
	"weighttracker/internal/adapter/memory"
	"weighttracker/internal/app"
	"weighttracker/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock preference store (function-fields pattern)
// ---------------------------------------------------------------------------

type mockPrefs struct {
	*memory.DB
	getFn func(ctx context.Context, namespace, key string) (string, bool, error)
}

func (m *mockPrefs) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, namespace, key)
	}
	return m.DB.Get(ctx, namespace, key)
}

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestServer(t *testing.T, prefs domain.PreferenceStore) (*httptest.Server, *testClock) {
	t.Helper()

	if prefs == nil {
		prefs = memory.New()
	}
	clock := &testClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)}

	ws := app.NewWeightService(prefs, app.WithClock(clock.now))
	hs := app.NewHistoryService(ws)
	cs := app.NewCredentialStore(prefs)
	ss := app.NewSettingsService(prefs)

	if err := cs.CreateAccount(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	srv := adapthttp.New(ws, hs, cs, ss)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, clock
}

func do(t *testing.T, method, url string, payload any, auth bool) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.SetBasicAuth("alice", "pw")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/health", nil, false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected Cache-Control no-store, got %q", got)
	}
	body := decodeBody(t, resp)
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestSignup(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	tests := []struct {
		name        string
		payload     map[string]any
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "created",
			payload:     map[string]any{"username": "bob", "password": "pw", "confirmPassword": "pw"},
			wantStatus:  http.StatusCreated,
			wantMessage: "Account created! You can log in now.",
		},
		{
			name:        "confirmation omitted",
			payload:     map[string]any{"username": "carol", "password": "pw"},
			wantStatus:  http.StatusCreated,
			wantMessage: "Account created! You can log in now.",
		},
		{
			name:        "taken after normalization",
			payload:     map[string]any{"username": "  ALICE ", "password": "other"},
			wantStatus:  http.StatusConflict,
			wantMessage: "That username is already in use. Please choose another one.",
		},
		{
			name:        "blank password",
			payload:     map[string]any{"username": "dave", "password": "   "},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please enter a username and password",
		},
		{
			name:        "blank confirmation",
			payload:     map[string]any{"username": "dave", "password": "pw", "confirmPassword": ""},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please complete all fields",
		},
		{
			name:        "mismatch",
			payload:     map[string]any{"username": "dave", "password": "pw", "confirmPassword": "pw2"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/api/auth/signup", tt.payload, false)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["message"] != tt.wantMessage {
				t.Fatalf("expected message %q, got %v", tt.wantMessage, body["message"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp := do(t, http.MethodPost, ts.URL+"/api/auth/login", map[string]any{"username": "Alice", "password": "pw"}, false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := decodeBody(t, resp)["message"]; got != "Welcome, Alice!" {
		t.Fatalf("unexpected welcome message %v", got)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/auth/login", map[string]any{"username": "alice", "password": "PW"}, false)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, ts.URL+"/api/auth/login", map[string]any{"username": "", "password": ""}, false)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWeightRequiresBasicAuth(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/weight", nil, false)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if resp.Header.Get("WWW-Authenticate") == "" {
		t.Fatal("expected WWW-Authenticate challenge")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/weight", nil)
	req.SetBasicAuth("alice", "wrong")
	bad, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer bad.Body.Close() //nolint:errcheck
	if bad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", bad.StatusCode)
	}
}

func TestWeightFlow(t *testing.T) {
	ts, clock := newTestServer(t, nil)

	resp := do(t, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"weight": "150", "notes": ""}, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["created"] != true {
		t.Fatalf("expected created=true, got %v", body["created"])
	}
	if cat := body["recentChange"].(map[string]any)["category"]; cat != string(app.ChangeNotEnoughData) {
		t.Fatalf("expected not_enough_data, got %v", cat)
	}

	resp = do(t, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"weight": "148", "notes": "feeling good"}, true)
	body = decodeBody(t, resp)
	if body["created"] != false {
		t.Fatalf("same-day record must update in place, got created=%v", body["created"])
	}
	if n := len(body["entries"].([]any)); n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}

	clock.t = clock.t.AddDate(0, 0, 1)
	resp = do(t, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"weight": "146", "notes": ""}, true)
	body = decodeBody(t, resp)
	badge := body["recentChange"].(map[string]any)
	if badge["category"] != string(app.ChangeLoss) || badge["label"] != "-2.0 lbs" {
		t.Fatalf("unexpected badge %v", badge)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/weight", nil, true)
	body = decodeBody(t, resp)
	entries := body["entries"].([]any)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0].(map[string]any)
	if first["date"] != "2026-03-11" || first["weight"] != "146" {
		t.Fatalf("expected newest entry first, got %v", first)
	}
	if body["today"] != "2026-03-11" {
		t.Fatalf("unexpected today %v", body["today"])
	}
}

func TestWeightUpdateAndDelete(t *testing.T) {
	ts, clock := newTestServer(t, nil)

	do(t, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"weight": "150", "notes": ""}, true)
	clock.t = clock.t.AddDate(0, 0, 1)
	do(t, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"weight": "149", "notes": ""}, true)

	resp := do(t, http.MethodPut, ts.URL+"/api/weight/1", map[string]any{"weight": "152", "notes": "fixed"}, true)
	body := decodeBody(t, resp)
	if body["updated"] != true {
		t.Fatalf("expected updated=true, got %v", body["updated"])
	}
	// Edit override: 152 - 150.
	if delta := body["recentChange"].(map[string]any)["delta"]; delta != 2.0 {
		t.Fatalf("expected override delta 2, got %v", delta)
	}

	resp = do(t, http.MethodPut, ts.URL+"/api/weight/7", map[string]any{"weight": "1", "notes": ""}, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("out-of-range update should not fail, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["updated"] != false {
		t.Fatalf("expected updated=false, got %v", body["updated"])
	}

	resp = do(t, http.MethodDelete, ts.URL+"/api/weight/abc", nil, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer index, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodDelete, ts.URL+"/api/weight/0", nil, true)
	body = decodeBody(t, resp)
	if body["deleted"] != true || len(body["entries"].([]any)) != 1 {
		t.Fatalf("unexpected delete result %v", body)
	}

	resp = do(t, http.MethodDelete, ts.URL+"/api/weight/5", nil, true)
	if body := decodeBody(t, resp); body["deleted"] != false {
		t.Fatalf("expected deleted=false, got %v", body["deleted"])
	}
}

func TestWeightHistory(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	do(t, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"weight": "150", "notes": ""}, true)

	resp := do(t, http.MethodGet, ts.URL+"/api/weight/history?days=3", nil, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	points := decodeBody(t, resp)["points"].([]any)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	last := points[2].(map[string]any)
	if last["day"] != "2026-03-10" || last["weight"] != 150.0 {
		t.Fatalf("unexpected last point %v", last)
	}
	if first := points[0].(map[string]any); first["weight"] != nil {
		t.Fatalf("expected empty first point, got %v", first)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/settings/dark-mode", nil, true)
	if body := decodeBody(t, resp); body["enabled"] != false {
		t.Fatalf("expected dark mode off by default, got %v", body["enabled"])
	}
	do(t, http.MethodPut, ts.URL+"/api/settings/dark-mode", map[string]any{"enabled": true}, true)
	resp = do(t, http.MethodGet, ts.URL+"/api/settings/dark-mode", nil, true)
	if body := decodeBody(t, resp); body["enabled"] != true {
		t.Fatalf("expected dark mode on, got %v", body["enabled"])
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/settings/alerts", nil, true)
	if body := decodeBody(t, resp); body["message"] != app.DefaultAlertMessage {
		t.Fatalf("expected default alert message, got %v", body["message"])
	}

	resp = do(t, http.MethodPut, ts.URL+"/api/settings/alerts", map[string]any{"enabled": true, "phone": "", "message": "hi"}, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without phone, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPut, ts.URL+"/api/settings/alerts", map[string]any{"enabled": true, "phone": "555-0100", "message": "hi"}, true)
	body := decodeBody(t, resp)
	if body["enabled"] != true || body["message"] != "hi" {
		t.Fatalf("unexpected alert settings %v", body)
	}
}

func TestStoreFailureIsInternalError(t *testing.T) {
	prefs := &mockPrefs{DB: memory.New()}
	ts, _ := newTestServer(t, prefs)
	prefs.getFn = func(context.Context, string, string) (string, bool, error) {
		return "", false, errors.New("disk gone")
	}

	resp := do(t, http.MethodPost, ts.URL+"/api/auth/login", map[string]any{"username": "alice", "password": "pw"}, false)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	resp = do(t, http.MethodGet, ts.URL+"/api/weight", nil, true)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestWeightHistoryClampsDays(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp := do(t, http.MethodGet, ts.URL+"/api/weight/history?days=1000", nil, true)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	points := body["points"].([]any)
	if len(points) != 366 {
		t.Fatalf("expected 366 points, got %d", len(points))
	}
	if body["days"] != 366.0 {
		t.Fatalf("expected days to report the clamped count, got %v", body["days"])
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	notes := strings.Repeat("x", 128<<10)
	resp := do(t, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"weight": "150", "notes": notes}, true)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized body, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/weight", nil, true)
	if n := len(decodeBody(t, resp)["entries"].([]any)); n != 0 {
		t.Fatalf("oversized request must not record an entry, got %d entries", n)
	}
}

func TestConcurrentSignupCreatesOneAccount(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	const n = 8
	statuses := make(chan int, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			payload := map[string]any{"username": "Zed", "password": "pw" + strings.Repeat("!", i)}
			var buf bytes.Buffer
			_ = json.NewEncoder(&buf).Encode(payload)
			resp, err := http.Post(ts.URL+"/api/auth/signup", "application/json", &buf)
			if err != nil {
				statuses <- 0
				return
			}
			_ = resp.Body.Close()
			statuses <- resp.StatusCode
		}(i)
	}

	created, conflicts := 0, 0
	for i := 0; i < n; i++ {
		switch <-statuses {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	if created != 1 || conflicts != n-1 {
		t.Fatalf("expected 1 created and %d conflicts, got %d and %d", n-1, created, conflicts)
	}
}
