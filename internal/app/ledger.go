package app

import (
	"time"

	"weighttracker/internal/domain"
)

// WeightLedger is an ordered, newest-first list of weight entries holding at
// most one entry per day. A new day's entry is inserted at the front; edits
// keep the entry where it is.
//
// A WeightLedger is not safe for concurrent use.
type WeightLedger struct {
	entries []domain.WeightEntry
	now     func() time.Time
}

// LedgerOption configures a WeightLedger.
type LedgerOption func(*WeightLedger)

// WithLedgerClock sets the clock used to derive today's key.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(l *WeightLedger) { l.now = now }
}

// NewWeightLedger creates a ledger seeded with entries, in the given order.
// If entries repeat a date, the first occurrence is kept.
func NewWeightLedger(entries []domain.WeightEntry, opts ...LedgerOption) *WeightLedger {
	l := &WeightLedger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	seen := make(map[domain.DayKey]struct{}, len(entries))
	l.entries = make([]domain.WeightEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Date]; dup {
			continue
		}
		seen[e.Date] = struct{}{}
		l.entries = append(l.entries, e)
	}
	return l
}

// Today returns the key for the current day according to the ledger clock.
func (l *WeightLedger) Today() domain.DayKey {
	return domain.DayKeyOf(l.now())
}

// UpsertToday records weight and notes for today. An existing entry for today
// is overwritten in place; otherwise a new entry goes to index 0. Weight text
// is stored as given.
func (l *WeightLedger) UpsertToday(weight, notes string) (entry domain.WeightEntry, created bool) {
	today := l.Today()
	if i := l.indexOf(today); i >= 0 {
		l.entries[i].Weight = weight
		l.entries[i].Notes = notes
		return l.entries[i], false
	}

	entry = domain.WeightEntry{Date: today, Weight: weight, Notes: notes}
	l.entries = append(l.entries, domain.WeightEntry{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry
	return entry, true
}

// Update replaces weight and notes of the entry at index. It returns false
// and changes nothing when index is out of range.
func (l *WeightLedger) Update(index int, weight, notes string) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	l.entries[index].Weight = weight
	l.entries[index].Notes = notes
	return true
}

// Delete removes the entry at index. It returns false and changes nothing
// when index is out of range.
func (l *WeightLedger) Delete(index int) bool {
	if index < 0 || index >= len(l.entries) {
		return false
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return true
}

// At returns a copy of the entry at index.
func (l *WeightLedger) At(index int) (domain.WeightEntry, bool) {
	if index < 0 || index >= len(l.entries) {
		return domain.WeightEntry{}, false
	}
	return l.entries[index], true
}

// Len returns the number of entries.
func (l *WeightLedger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries; later mutations do not show through.
func (l *WeightLedger) Entries() []domain.WeightEntry {
	out := make([]domain.WeightEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *WeightLedger) indexOf(day domain.DayKey) int {
	for i, e := range l.entries {
		if e.Date == day {
			return i
		}
	}
	return -1
}
