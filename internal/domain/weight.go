// Package domain contains the core business entities and ports.
package domain

import (
	"math"
	"strconv"
	"strings"
)

// WeightEntry is one day's weigh-in. Weight keeps the text exactly as the
// user typed it; see ParseWeight for the numeric view.
type WeightEntry struct {
	Date   DayKey `json:"date"`
	Weight string `json:"weight"`
	Notes  string `json:"notes"`
}

// Value returns the parsed weight, or false when the text is not a number.
func (e WeightEntry) Value() (float64, bool) {
	return ParseWeight(e.Weight)
}

// ParseWeight interprets weight text as a decimal number. Surrounding
// whitespace is ignored; anything else that fails to parse, including
// NaN and infinities, yields false.
func ParseWeight(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
