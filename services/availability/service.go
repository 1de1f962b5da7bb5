package availability

import (
	"context"
	"time"

	"carebook/models"
	"carebook/services/calendar"
	"carebook/utils"

	"go.uber.org/zap"
)

// AvailabilityService turns business rules plus external busy time into
// candidate slots. Stateless aside from the rule cache; safe for concurrent use.
type AvailabilityService interface {
	Rules(ctx context.Context, provider models.ProviderProfile) (models.SchedulingRules, error)
	ListSlots(ctx context.Context, provider models.ProviderProfile, date time.Time) ([]models.CandidateSlot, error)
	// SlotAvailable re-checks a single slot against fresh busy data.
	SlotAvailable(ctx context.Context, provider models.ProviderProfile, start, end time.Time) (bool, error)
	InvalidateRules(ctx context.Context) error
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Resolver *RuleResolver
	Calendar calendar.CalendarService
	Now      func() time.Time // injectable clock for tests
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Rules resolves the effective scheduling rules for the provider.
func (s *DefaultAvailabilityService) Rules(ctx context.Context, provider models.ProviderProfile) (models.SchedulingRules, error) {
	return s.Resolver.Resolve(ctx, provider)
}

// ListSlots generates candidate slots for the date and removes those that
// collide with the provider's external busy intervals. One busy fetch per
// request, never one per slot.
func (s *DefaultAvailabilityService) ListSlots(ctx context.Context, provider models.ProviderProfile, date time.Time) ([]models.CandidateSlot, error) {
	rules, err := s.Resolver.Resolve(ctx, provider)
	if err != nil {
		return nil, err
	}

	slots := GenerateSlots(date, rules, s.now())
	if len(slots) == 0 {
		return nil, nil
	}

	// Providers scheduled outside the calendar of record have nothing to
	// consult; their candidates pass through unfiltered.
	if !provider.CalendarBacked() {
		return slots, nil
	}

	busy, err := s.busyForDay(ctx, provider, date)
	if err != nil {
		return nil, err
	}
	return FilterConflicts(slots, busy), nil
}

// SlotAvailable re-validates one slot against freshly fetched busy intervals.
func (s *DefaultAvailabilityService) SlotAvailable(ctx context.Context, provider models.ProviderProfile, start, end time.Time) (bool, error) {
	if !provider.CalendarBacked() {
		return true, nil
	}
	busy, err := s.busyForDay(ctx, provider, start)
	if err != nil {
		return false, err
	}
	return !HasConflict(start, end, busy), nil
}

// InvalidateRules drops the cached global defaults.
func (s *DefaultAvailabilityService) InvalidateRules(ctx context.Context) error {
	return s.Resolver.Invalidate(ctx)
}

func (s *DefaultAvailabilityService) busyForDay(ctx context.Context, provider models.ProviderProfile, date time.Time) ([]models.BusyInterval, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	busy, err := s.Calendar.GetBusyIntervals(ctx, provider.Email, dayStart, dayEnd)
	if err != nil {
		utils.GetLogger().Error("busy interval fetch failed",
			zap.String("providerId", provider.ID), zap.Error(err))
		return nil, NewAvailabilityUnavailableError(err)
	}
	return busy, nil
}
