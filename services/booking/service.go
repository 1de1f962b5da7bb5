package booking

import (
	"context"
	"fmt"
	"time"

	"carebook/models"
	"carebook/services/availability"
	"carebook/utils"

	"go.uber.org/zap"
)

// ListSlots resolves the provider and returns the ordered candidate slots
// for the date.
func (s *DefaultBookingService) ListSlots(ctx context.Context, providerSlug string, date time.Time) ([]models.CandidateSlot, error) {
	provider, err := s.resolveProvider(ctx, providerSlug)
	if err != nil {
		return nil, err
	}
	return s.Availability.ListSlots(ctx, *provider, date)
}

// PlaceHold grants a time-limited exclusive hold on the chosen slot.
func (s *DefaultBookingService) PlaceHold(ctx context.Context, providerSlug string, date time.Time, slotLabel string) (models.SoftHold, error) {
	provider, err := s.resolveProvider(ctx, providerSlug)
	if err != nil {
		return models.SoftHold{}, err
	}

	rules, err := s.Availability.Rules(ctx, *provider)
	if err != nil {
		return models.SoftHold{}, err
	}

	slotStart, err := availability.ParseSlotLabel(date, slotLabel)
	if err != nil {
		return models.SoftHold{}, &Error{Code: CodeInvalidSlot, Message: "unrecognized slot", Err: err}
	}

	// A hold may only claim a slot the generator would actually offer for
	// this date: right workday, inside the window, on the duration stride,
	// and past the lead-time policy.
	slot, ok := offeredSlot(date, rules, s.now(), slotStart)
	if !ok {
		return models.SoftHold{}, newError(CodeInvalidSlot, "slot is not offered for this date")
	}

	hold, err := s.Holds.Place(provider.ID, slot.Start, slot.End)
	if err != nil {
		return models.SoftHold{}, err
	}

	utils.GetLogger().Info("hold placed",
		zap.String("providerId", provider.ID),
		zap.Time("slotStart", slotStart),
		zap.String("handle", hold.Handle))
	return hold, nil
}

// ReleaseHold terminates the hold; unknown handles are a no-op.
func (s *DefaultBookingService) ReleaseHold(ctx context.Context, handle string) {
	s.Holds.Release(handle)
}

// HoldStatus returns a snapshot of the hold and whether it is still live.
func (s *DefaultBookingService) HoldStatus(handle string) (models.SoftHold, bool) {
	return s.Holds.Get(handle)
}

func offeredSlot(date time.Time, rules models.SchedulingRules, now, slotStart time.Time) (models.CandidateSlot, bool) {
	for _, slot := range availability.GenerateSlots(date, rules, now) {
		if slot.Start.Equal(slotStart) {
			return slot, true
		}
	}
	return models.CandidateSlot{}, false
}

func (s *DefaultBookingService) resolveProvider(ctx context.Context, slug string) (*models.ProviderProfile, error) {
	provider, err := s.Directory.GetProviderBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}
	if provider == nil {
		return nil, newError(CodeProviderNotFound, "unknown provider")
	}
	return provider, nil
}
