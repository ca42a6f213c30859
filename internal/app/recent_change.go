package app

import (
	"fmt"
	"math"
	"sort"

	"weighttracker/internal/domain"
)

// ChangeCategory is the presentation bucket for a recent change.
type ChangeCategory string

// The four display states of a recent change.
const (
	ChangeNotEnoughData ChangeCategory = "not_enough_data"
	ChangeLoss          ChangeCategory = "loss"
	ChangeGain          ChangeCategory = "gain"
	ChangeNone          ChangeCategory = "no_change"
)

// ComputeRecentChange returns latest − previous over the two most recently
// dated entries with a numeric weight, skipping entries whose weight does
// not parse. It returns nil when fewer than two such entries exist.
func ComputeRecentChange(entries []domain.WeightEntry) *float64 {
	sorted := make([]domain.WeightEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	var found []float64
	for _, e := range sorted {
		v, ok := e.Value()
		if !ok {
			continue
		}
		found = append(found, v)
		if len(found) == 2 {
			d := found[0] - found[1]
			return &d
		}
	}
	return nil
}

// Classify maps a recent change to its display category.
func Classify(change *float64) ChangeCategory {
	switch {
	case change == nil:
		return ChangeNotEnoughData
	case *change < 0:
		return ChangeLoss
	case *change > 0:
		return ChangeGain
	default:
		return ChangeNone
	}
}

// Badge is the rendered recent-change indicator.
type Badge struct {
	Category ChangeCategory `json:"category"`
	Label    string         `json:"label"`
	Message  string         `json:"message"`
	Delta    *float64       `json:"delta"`
}

// NewBadge renders change into label and message text.
func NewBadge(change *float64) Badge {
	b := Badge{Category: Classify(change), Delta: change}
	switch b.Category {
	case ChangeNotEnoughData:
		b.Label = "Keep logging"
		b.Message = "Log at least one more weight to see your recent change."
	case ChangeLoss:
		b.Label = fmt.Sprintf("-%.1f lbs", math.Abs(*change))
		b.Message = "Lost since your last entry. Nice work!"
	case ChangeGain:
		b.Label = fmt.Sprintf("+%.1f lbs", *change)
		b.Message = "Gained since your last entry. Stay consistent."
	default:
		b.Label = "0.0 lbs"
		b.Message = "No change since your last entry."
	}
	return b
}

// RecentChangeIndicator holds the value shown for the recent change. After a
// mutation the caller may set an override computed directly from the edit,
// so the displayed value does not wait for a fresh derivation. The override
// is presentation state only and is never persisted.
type RecentChangeIndicator struct {
	override *float64
}

// OverrideAfterAdd sets the override to newWeight minus the newest numeric
// weight in before, the entries as they were prior to the add. Nothing is
// set unless both values are numeric.
func (c *RecentChangeIndicator) OverrideAfterAdd(before []domain.WeightEntry, newWeight string) {
	nv, ok := domain.ParseWeight(newWeight)
	if !ok {
		return
	}
	prev, ok := latestValue(before)
	if !ok {
		return
	}
	d := nv - prev
	c.override = &d
}

// OverrideAfterEdit sets the override to newWeight minus the edited entry's
// weight before the edit. Nothing is set unless both values are numeric.
func (c *RecentChangeIndicator) OverrideAfterEdit(before domain.WeightEntry, newWeight string) {
	nv, ok := domain.ParseWeight(newWeight)
	if !ok {
		return
	}
	pv, ok := before.Value()
	if !ok {
		return
	}
	d := nv - pv
	c.override = &d
}

// Override returns the current override, if any.
func (c *RecentChangeIndicator) Override() *float64 {
	return c.override
}

// Clear drops the override.
func (c *RecentChangeIndicator) Clear() {
	c.override = nil
}

// Display returns the override when set, else the value derived from entries.
func (c *RecentChangeIndicator) Display(entries []domain.WeightEntry) *float64 {
	if c.override != nil {
		return c.override
	}
	return ComputeRecentChange(entries)
}

// Refresh clears the override and derives the value from entries.
func (c *RecentChangeIndicator) Refresh(entries []domain.WeightEntry) *float64 {
	c.Clear()
	return ComputeRecentChange(entries)
}

func latestValue(entries []domain.WeightEntry) (float64, bool) {
	var (
		best    float64
		bestDay domain.DayKey
		found   bool
	)
	for _, e := range entries {
		v, ok := e.Value()
		if !ok {
			continue
		}
		if !found || e.Date > bestDay {
			best, bestDay, found = v, e.Date, true
		}
	}
	return best, found
}
