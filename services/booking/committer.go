package booking

import (
	"context"
	"time"

	"carebook/models"
	"carebook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Commit converts a live hold into a confirmed booking.
//
// The hold only serializes callers within this process; an external actor can
// still book the calendar slot through another channel, so availability is
// re-checked against fresh busy data before the write. Liveness is validated
// here, at the start, not trusted from any earlier check by the caller.
func (s *DefaultBookingService) Commit(ctx context.Context, handle string, intake models.IntakeDetails) (*models.Booking, error) {
	logger := utils.GetLogger()

	hold, live := s.Holds.Get(handle)
	if !live {
		return nil, newError(CodeHoldExpired, "hold has expired or was released")
	}

	provider, err := s.Directory.GetProviderByID(ctx, hold.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		s.Holds.Release(handle)
		return nil, newError(CodeProviderNotFound, "held provider no longer exists")
	}

	// Fresh conflict re-check. An unreachable calendar keeps the hold live
	// so the caller may retry before expiry.
	free, err := s.Availability.SlotAvailable(ctx, *provider, hold.SlotStart, hold.SlotEnd)
	if err != nil {
		return nil, err
	}
	if !free {
		s.Holds.Release(handle)
		logger.Info("slot conflicted at commit time, hold released",
			zap.String("providerId", hold.ProviderID),
			zap.Time("slotStart", hold.SlotStart))
		return nil, newError(CodeSlotNoLongerAvailable, "slot was taken through another channel")
	}

	eventID, err := s.Calendar.CreateEvent(ctx, provider.Email, hold.SlotStart, hold.SlotEnd, intake)
	if err != nil {
		// Transient by contract: the hold stays live and the same commit may
		// be retried until expiry. Never converted to Confirmed on an
		// ambiguous result.
		logger.Error("calendar write failed, hold preserved",
			zap.String("handle", handle), zap.Error(err))
		return nil, &Error{Code: CodeExternalWriteFailed, Message: "calendar write failed", Err: err}
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		ProviderID:      provider.ID,
		ProviderName:    provider.Name,
		SlotStart:       hold.SlotStart,
		SlotEnd:         hold.SlotEnd,
		Patient:         intake,
		ExternalEventID: eventID,
		Status:          models.BookingConfirmed,
		CreatedAt:       time.Now(),
	}

	// The calendar write succeeded, so the hold is finished regardless of
	// what the bookkeeping below does.
	s.Holds.Complete(handle)

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, booking); err != nil {
			logger.Error("failed to persist booking record",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *booking); err != nil {
			logger.Error("failed to schedule reminder",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	logger.Info("booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", booking.ProviderID),
		zap.Time("slotStart", booking.SlotStart))
	return booking, nil
}
