package models

import "time"

// SchedulingRules describes the bookable window for a provider on a work day.
// A resolved value is immutable; overrides are merged in by the rule resolver.
type SchedulingRules struct {
	StartHour           int   `json:"startHour"`           // 0-23, inclusive start of the working window
	EndHour             int   `json:"endHour"`             // 0-23, exclusive end of the working window
	WorkDays            []int `json:"workDays"`            // weekday numbers, Sunday = 0
	AppointmentDuration int   `json:"appointmentDuration"` // minutes per slot
}

// IsWorkDay reports whether the weekday is part of the working week.
func (r SchedulingRules) IsWorkDay(day time.Weekday) bool {
	for _, d := range r.WorkDays {
		if d == int(day) {
			return true
		}
	}
	return false
}

// Valid reports whether the rules describe a usable window.
func (r SchedulingRules) Valid() bool {
	return r.StartHour >= 0 && r.EndHour <= 23 && r.StartHour < r.EndHour &&
		r.AppointmentDuration > 0 && len(r.WorkDays) > 0
}
