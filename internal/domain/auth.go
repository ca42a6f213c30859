package domain

import "strings"

// NormalizeUsername returns the lookup key form of a username: trimmed and
// lower-cased. strings.ToLower is locale independent.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// UserKey is the preference key holding the password for username.
func UserKey(username string) string {
	return "user_" + NormalizeUsername(username)
}

// LedgerKey is the preference key holding the weight ledger snapshot for
// username.
func LedgerKey(username string) string {
	return "entries_" + NormalizeUsername(username)
}
