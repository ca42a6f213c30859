package app

import (
	"context"
	"errors"
	"strings"

	"weighttracker/internal/domain"
)

// DefaultAlertMessage is the goal alert text used until the user sets one.
const DefaultAlertMessage = "Congrats! You reached your weight goal in Revolv 360!"

// ErrPhoneRequired indicates alerts were enabled without a phone number.
var ErrPhoneRequired = errors.New("phone number is required when alerts are enabled")

// SettingsService reads and writes app preferences outside the tracker core.
type SettingsService struct {
	prefs domain.PreferenceStore
}

// NewSettingsService creates a SettingsService backed by prefs.
func NewSettingsService(prefs domain.PreferenceStore) *SettingsService {
	return &SettingsService{prefs: prefs}
}

// DarkMode returns the dark mode flag, false by default.
func (s *SettingsService) DarkMode(ctx context.Context) (bool, error) {
	return domain.GetBool(ctx, s.prefs, domain.NamespaceSettings, domain.KeyDarkMode, false)
}

// SetDarkMode stores the dark mode flag.
func (s *SettingsService) SetDarkMode(ctx context.Context, on bool) error {
	return domain.PutBool(ctx, s.prefs, domain.NamespaceSettings, domain.KeyDarkMode, on)
}

// AlertSettings is the goal-alert configuration.
type AlertSettings struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message"`
}

// AlertSettings returns the stored alert configuration.
func (s *SettingsService) AlertSettings(ctx context.Context) (AlertSettings, error) {
	enabled, err := domain.GetBool(ctx, s.prefs, domain.NamespaceAlerts, domain.KeyAlertsEnabled, false)
	if err != nil {
		return AlertSettings{}, err
	}
	msg, err := domain.GetString(ctx, s.prefs, domain.NamespaceAlerts, domain.KeyAlertMessage, DefaultAlertMessage)
	if err != nil {
		return AlertSettings{}, err
	}
	return AlertSettings{Enabled: enabled, Message: msg}, nil
}

// SaveAlertSettings validates and stores the alert configuration. The phone
// number is only checked for presence; it is not stored.
func (s *SettingsService) SaveAlertSettings(ctx context.Context, enabled bool, phone, message string) error {
	if enabled && strings.TrimSpace(phone) == "" {
		return ErrPhoneRequired
	}
	if err := domain.PutBool(ctx, s.prefs, domain.NamespaceAlerts, domain.KeyAlertsEnabled, enabled); err != nil {
		return err
	}
	return s.prefs.Put(ctx, domain.NamespaceAlerts, domain.KeyAlertMessage, message)
}
