package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"weighttracker/internal/domain"
)

// WeightService encapsulates weight-tracking use cases. Each user gets a
// WeightLedger, loaded lazily from the ledger preference namespace and
// written back after every mutation. All ledger access is serialized.
type WeightService struct {
	prefs domain.PreferenceStore
	now   func() time.Time

	mu      sync.Mutex
	ledgers map[string]*WeightLedger
}

// WeightOption configures a WeightService.
type WeightOption func(*WeightService)

// WithClock sets the clock used to decide which day a weigh-in belongs to.
func WithClock(now func() time.Time) WeightOption {
	return func(s *WeightService) { s.now = now }
}

// NewWeightService creates a WeightService persisting ledgers to prefs.
func NewWeightService(prefs domain.PreferenceStore, opts ...WeightOption) *WeightService {
	s := &WeightService{
		prefs:   prefs,
		now:     time.Now,
		ledgers: make(map[string]*WeightLedger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WeightResult is the outcome of a ledger mutation.
type WeightResult struct {
	// Applied is false when an update or delete named an index that does
	// not exist; the ledger is then unchanged.
	Applied bool                 `json:"applied"`
	Created bool                 `json:"created"`
	Entry   *domain.WeightEntry  `json:"entry,omitempty"`
	Entries []domain.WeightEntry `json:"entries"`
	Change  Badge                `json:"recentChange"`
}

// RecordWeight logs today's weight for user, replacing an entry already
// logged today. The returned badge reflects the change against the newest
// weight logged before this call. For a second weigh-in on the same day that
// is today's earlier value, so the badge can differ from the one ListEntries
// derives afterwards against the previous day.
func (s *WeightService) RecordWeight(ctx context.Context, user, weight, notes string) (*WeightResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.ledger(ctx, user)
	if err != nil {
		return nil, err
	}

	var ind RecentChangeIndicator
	ind.OverrideAfterAdd(l.Entries(), weight)

	entry, created := l.UpsertToday(weight, notes)
	s.persist(ctx, user, l)

	entries := l.Entries()
	return &WeightResult{
		Applied: true,
		Created: created,
		Entry:   &entry,
		Entries: entries,
		Change:  NewBadge(ind.Display(entries)),
	}, nil
}

// UpdateEntry edits the entry at index. An out-of-range index is a no-op
// reported through Applied.
func (s *WeightService) UpdateEntry(ctx context.Context, user string, index int, weight, notes string) (*WeightResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.ledger(ctx, user)
	if err != nil {
		return nil, err
	}

	var ind RecentChangeIndicator
	before, ok := l.At(index)
	if ok {
		ind.OverrideAfterEdit(before, weight)
	}

	res := &WeightResult{Applied: l.Update(index, weight, notes)}
	if res.Applied {
		s.persist(ctx, user, l)
		entry, _ := l.At(index)
		res.Entry = &entry
	}
	res.Entries = l.Entries()
	res.Change = NewBadge(ind.Display(res.Entries))
	return res, nil
}

// DeleteEntry removes the entry at index. An out-of-range index is a no-op
// reported through Applied.
func (s *WeightService) DeleteEntry(ctx context.Context, user string, index int) (*WeightResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.ledger(ctx, user)
	if err != nil {
		return nil, err
	}

	res := &WeightResult{Applied: l.Delete(index)}
	if res.Applied {
		s.persist(ctx, user, l)
	}
	res.Entries = l.Entries()
	res.Change = NewBadge(ComputeRecentChange(res.Entries))
	return res, nil
}

// ListEntries returns user's entries newest first with a freshly derived
// recent-change badge.
func (s *WeightService) ListEntries(ctx context.Context, user string) ([]domain.WeightEntry, Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.ledger(ctx, user)
	if err != nil {
		return nil, Badge{}, err
	}
	entries := l.Entries()
	return entries, NewBadge(ComputeRecentChange(entries)), nil
}

// Today returns the day key new weigh-ins are recorded under.
func (s *WeightService) Today() domain.DayKey {
	return domain.DayKeyOf(s.now())
}

func (s *WeightService) ledger(ctx context.Context, user string) (*WeightLedger, error) {
	key := domain.NormalizeUsername(user)
	if l, ok := s.ledgers[key]; ok {
		return l, nil
	}

	raw, ok, err := s.prefs.Get(ctx, domain.NamespaceLedger, domain.LedgerKey(key))
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	var entries []domain.WeightEntry
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return nil, fmt.Errorf("decode ledger: %w", err)
		}
	}

	l := NewWeightLedger(entries, WithLedgerClock(s.now))
	s.ledgers[key] = l
	return l, nil
}

// persist writes the ledger snapshot. Failures are logged and otherwise
// ignored; the in-memory ledger stays authoritative.
func (s *WeightService) persist(ctx context.Context, user string, l *WeightLedger) {
	raw, err := json.Marshal(l.Entries())
	if err != nil {
		log.Warn().Err(err).Str("user", domain.NormalizeUsername(user)).Msg("encode ledger snapshot")
		return
	}
	if err := s.prefs.Put(ctx, domain.NamespaceLedger, domain.LedgerKey(user), string(raw)); err != nil {
		log.Warn().Err(err).Str("user", domain.NormalizeUsername(user)).Msg("persist ledger snapshot")
	}
}
