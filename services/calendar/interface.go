package calendar

import (
	"context"
	"time"

	"carebook/models"
)

// CalendarService is the external calendar collaborator. It is the only
// source of truth for a provider's busy time; failures must surface to the
// caller, never degrade to "fully available".
type CalendarService interface {
	// GetBusyIntervals returns the provider's busy intervals within [from, to).
	GetBusyIntervals(ctx context.Context, providerEmail string, from, to time.Time) ([]models.BusyInterval, error)
	// CreateEvent writes a busy event for the slot and returns the external event ID.
	CreateEvent(ctx context.Context, providerEmail string, start, end time.Time, patient models.IntakeDetails) (string, error)
}
