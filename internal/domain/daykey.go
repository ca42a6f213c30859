package domain

import (
	"fmt"
	"time"
)

// DayKeyLayout is the single date format used for entry keys.
const DayKeyLayout = "2006-01-02"

// DayKey identifies a calendar day as "YYYY-MM-DD". Keys compare
// chronologically as plain strings.
type DayKey string

// DayKeyOf returns the key for the calendar day t falls on in its own location.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(DayKeyLayout))
}

// ParseDayKey validates s and returns it as a DayKey.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(DayKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return DayKeyOf(t), nil
}

// Time returns midnight of the day in loc.
func (k DayKey) Time(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, string(k), loc)
}

// AddDays returns the key n days after k (n may be negative).
func (k DayKey) AddDays(n int) (DayKey, error) {
	t, err := k.Time(time.UTC)
	if err != nil {
		return "", err
	}
	return DayKeyOf(t.AddDate(0, 0, n)), nil
}

func (k DayKey) String() string { return string(k) }
