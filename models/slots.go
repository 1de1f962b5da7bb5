package models

import "time"

// CandidateSlot is a generated, not-yet-reserved bookable time window.
// Value type, recomputed per request and never persisted.
type CandidateSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"` // 12-hour clock, e.g. "9:00 AM"
}

// BusyInterval is an externally reported half-open range [Start, End) during
// which the provider is already committed.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the half-open slot [slotStart, slotEnd) intersects
// the busy interval. Touching boundaries do not overlap.
func (b BusyInterval) Overlaps(slotStart, slotEnd time.Time) bool {
	return slotStart.Before(b.End) && slotEnd.After(b.Start)
}
