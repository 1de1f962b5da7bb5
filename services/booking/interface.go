package booking

import (
	"context"
	"time"

	bookingRepo "carebook/database/repository/booking"
	"carebook/models"
	"carebook/services/availability"
	"carebook/services/calendar"
	"carebook/services/directory"
)

// BookingService is the engine surface exposed to the API layer: list
// candidate slots, claim one with a soft hold, and commit the hold into a
// confirmed booking.
type BookingService interface {
	ListSlots(ctx context.Context, providerSlug string, date time.Time) ([]models.CandidateSlot, error)
	PlaceHold(ctx context.Context, providerSlug string, date time.Time, slotLabel string) (models.SoftHold, error)
	ReleaseHold(ctx context.Context, handle string)
	HoldStatus(handle string) (models.SoftHold, bool)
	Commit(ctx context.Context, handle string, intake models.IntakeDetails) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Directory    directory.DirectoryService
	Availability availability.AvailabilityService
	Calendar     calendar.CalendarService
	Holds        *HoldManager
	Repo         bookingRepo.BookingRepository
	Reminders    ReminderScheduler
	Now          func() time.Time // injectable clock for tests
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
