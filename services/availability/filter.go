package availability

import (
	"time"

	"carebook/models"
)

// HasConflict reports whether the half-open slot [start, end) overlaps any
// busy interval. Boundaries that merely touch do not conflict.
func HasConflict(start, end time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// FilterConflicts removes candidate slots that overlap a busy interval,
// preserving order.
func FilterConflicts(slots []models.CandidateSlot, busy []models.BusyInterval) []models.CandidateSlot {
	if len(busy) == 0 {
		return slots
	}
	kept := make([]models.CandidateSlot, 0, len(slots))
	for _, slot := range slots {
		if !HasConflict(slot.Start, slot.End, busy) {
			kept = append(kept, slot)
		}
	}
	return kept
}
