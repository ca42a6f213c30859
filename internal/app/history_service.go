package app

import (
	"context"
	"errors"

	"weighttracker/internal/domain"
)

const maxHistoryDays = 366

// HistoryService builds per-day series from a user's ledger.
type HistoryService struct {
	weights *WeightService
}

// NewHistoryService creates a HistoryService reading from ws.
func NewHistoryService(ws *WeightService) *HistoryService {
	return &HistoryService{weights: ws}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day    domain.DayKey `json:"day"`
	Weight *float64      `json:"weight"`
	Notes  string        `json:"notes,omitempty"`
}

// GetDaily returns one point per calendar day for the last days days, oldest
// first and ending today. Days without an entry, or whose weight is not
// numeric, have a nil Weight.
func (s *HistoryService) GetDaily(ctx context.Context, user string, days int) ([]DayPoint, error) {
	if days <= 0 {
		return nil, errors.New("days must be > 0")
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	entries, _, err := s.weights.ListEntries(ctx, user)
	if err != nil {
		return nil, err
	}
	byDay := make(map[domain.DayKey]domain.WeightEntry, len(entries))
	for _, e := range entries {
		byDay[e.Date] = e
	}

	today := s.weights.Today()
	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day, err := today.AddDays(-i)
		if err != nil {
			return nil, err
		}
		p := DayPoint{Day: day}
		if e, ok := byDay[day]; ok {
			p.Notes = e.Notes
			if v, ok := e.Value(); ok {
				p.Weight = &v
			}
		}
		points = append(points, p)
	}
	return points, nil
}
