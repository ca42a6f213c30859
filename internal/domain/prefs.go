package domain

import (
	"context"
	"strconv"
)

// Preference namespaces.
const (
	NamespaceAuth     = "auth_prefs"
	NamespaceSettings = "settings_prefs"
	NamespaceAlerts   = "weight_prefs"
	NamespaceLedger   = "ledger_prefs"
)

// Preference keys outside the per-user ones built by UserKey and LedgerKey.
const (
	KeyDarkMode      = "dark_mode"
	KeyAlertsEnabled = "alerts_enabled"
	KeyAlertMessage  = "alert_message"
)

// PreferenceStore is the port for namespaced key-value persistence.
// Get reports ok=false for a missing key.
type PreferenceStore interface {
	Get(ctx context.Context, namespace, key string) (value string, ok bool, err error)
	Put(ctx context.Context, namespace, key, value string) error
}

// GetString returns the stored value, or fallback when the key is missing.
func GetString(ctx context.Context, s PreferenceStore, namespace, key, fallback string) (string, error) {
	v, ok, err := s.Get(ctx, namespace, key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return v, nil
}

// GetBool returns the stored boolean, or fallback when the key is missing or
// does not hold a boolean.
func GetBool(ctx context.Context, s PreferenceStore, namespace, key string, fallback bool) (bool, error) {
	v, ok, err := s.Get(ctx, namespace, key)
	if err != nil || !ok {
		return fallback, err
	}
	b, perr := strconv.ParseBool(v)
	if perr != nil {
		return fallback, nil
	}
	return b, nil
}

// PutBool stores a boolean preference.
func PutBool(ctx context.Context, s PreferenceStore, namespace, key string, value bool) error {
	return s.Put(ctx, namespace, key, strconv.FormatBool(value))
}
