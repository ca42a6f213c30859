// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"weighttracker/internal/domain"
)

var (
	// ErrBlankInput indicates an empty or whitespace-only username or password.
	ErrBlankInput = errors.New("username and password are required")
	// ErrUsernameTaken indicates the normalized username already has an account.
	ErrUsernameTaken = errors.New("username is already in use")
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// CredentialStore keeps local accounts in the auth preference namespace,
// one key per normalized username holding the password.
//
// Passwords are stored and compared as plaintext. Introducing hashing
// requires a migration for existing records.
type CredentialStore struct {
	prefs domain.PreferenceStore

	// mu makes the existence check and the write in CreateAccount one step.
	mu sync.Mutex
}

// NewCredentialStore creates a CredentialStore backed by prefs.
func NewCredentialStore(prefs domain.PreferenceStore) *CredentialStore {
	return &CredentialStore{prefs: prefs}
}

// CreateAccount stores a new account. It fails with ErrBlankInput or
// ErrUsernameTaken without touching the store.
func (s *CredentialStore) CreateAccount(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrBlankInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.UserKey(username)
	_, exists, err := s.prefs.Get(ctx, domain.NamespaceAuth, key)
	if err != nil {
		return fmt.Errorf("lookup account: %w", err)
	}
	if exists {
		return ErrUsernameTaken
	}

	if err := s.prefs.Put(ctx, domain.NamespaceAuth, key, password); err != nil {
		return fmt.Errorf("store account: %w", err)
	}
	log.Info().Str("user", domain.NormalizeUsername(username)).Msg("account created")
	return nil
}

// ValidateLogin reports whether an account exists for username and its
// password equals password exactly. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *CredentialStore) ValidateLogin(ctx context.Context, username, password string) (bool, error) {
	stored, ok, err := s.prefs.Get(ctx, domain.NamespaceAuth, domain.UserKey(username))
	if err != nil {
		return false, fmt.Errorf("lookup account: %w", err)
	}
	return ok && stored == password, nil
}
