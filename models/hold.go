package models

import "time"

// SoftHold is a time-limited exclusive claim on a (provider, slot start) key.
// It blocks other holds on the same slot but does not touch the external
// calendar. Holds live only in process memory.
type SoftHold struct {
	Handle     string    `json:"handle"`
	ProviderID string    `json:"providerId"`
	SlotStart  time.Time `json:"slotStart"`
	SlotEnd    time.Time `json:"slotEnd"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// LiveAt reports whether the hold is still live at the given instant.
// Expiry is a property of the timestamps, not of any sweep having run.
func (h SoftHold) LiveAt(now time.Time) bool {
	return now.Before(h.ExpiresAt)
}

// SecondsLeft returns the remaining lifetime, clamped at zero. The visible
// countdown is a pure function of (now, expiresAt); no timer is involved.
func (h SoftHold) SecondsLeft(now time.Time) int {
	left := int(h.ExpiresAt.Sub(now) / time.Second)
	if left < 0 {
		return 0
	}
	return left
}
