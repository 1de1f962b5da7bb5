package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"carebook/models"
)

// afternoonCutoffHour implements the lead-time policy: bookings for tomorrow
// made at or after 13:00 lose tomorrow's slots starting before 13:00.
const afternoonCutoffHour = 13

// GenerateSlots produces the ordered candidate slots for a date under the
// given rules. Deterministic and pure: identical (date, rules, now) always
// yields the identical sequence.
func GenerateSlots(date time.Time, rules models.SchedulingRules, now time.Time) []models.CandidateSlot {
	// A non-positive duration or inverted window would never terminate below.
	if !rules.Valid() {
		return nil
	}
	// No same-day self-service booking.
	if sameDay(date, now) {
		return nil
	}
	if !rules.IsWorkDay(date.Weekday()) {
		return nil
	}

	cutoffAfternoon := isTomorrow(date, now) && now.Hour() >= afternoonCutoffHour

	var slots []models.CandidateSlot
	startMin := rules.StartHour * 60
	endMin := rules.EndHour * 60
	for m := startMin; m+rules.AppointmentDuration <= endMin; m += rules.AppointmentDuration {
		hour := m / 60
		minute := m % 60

		if cutoffAfternoon && hour < afternoonCutoffHour {
			continue
		}

		start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
		slots = append(slots, models.CandidateSlot{
			Start: start,
			End:   start.Add(time.Duration(rules.AppointmentDuration) * time.Minute),
			Label: FormatSlotLabel(hour, minute),
		})
	}
	return slots
}

// FormatSlotLabel renders a 12-hour clock label. Hour 0 maps to 12 AM and
// hour 12 stays 12 PM; the boundary mapping must be exact.
func FormatSlotLabel(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour > 12:
		displayHour = hour - 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period)
}

// ParseSlotLabel turns a label like "9:00 AM" back into an instant on the
// given date. Inverse of FormatSlotLabel.
func ParseSlotLabel(date time.Time, label string) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(label), " ", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid slot label %q", label)
	}
	clock := strings.SplitN(parts[0], ":", 2)
	if len(clock) != 2 {
		return time.Time{}, fmt.Errorf("invalid slot label %q", label)
	}

	hour, err := strconv.Atoi(clock[0])
	if err != nil || hour < 1 || hour > 12 {
		return time.Time{}, fmt.Errorf("invalid hour in slot label %q", label)
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in slot label %q", label)
	}

	switch strings.ToUpper(parts[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return time.Time{}, fmt.Errorf("invalid period in slot label %q", label)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func isTomorrow(date, now time.Time) bool {
	return sameDay(date, now.AddDate(0, 0, 1))
}
