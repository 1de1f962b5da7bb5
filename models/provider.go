package models

// SchedulingSource identifies where a provider's calendar of record lives.
type SchedulingSource string

const (
	// SourceCalendar means the provider's availability is backed by the
	// external calendar and busy intervals must be consulted.
	SourceCalendar SchedulingSource = "calendar"
	// SourceExternal means scheduling happens in a system we cannot query;
	// candidate slots are returned unfiltered.
	SourceExternal SchedulingSource = "external"
)

// ProviderProfile is a read-only snapshot owned by the directory collaborator.
type ProviderProfile struct {
	ID               string           `json:"id"`
	Slug             string           `json:"slug"`
	Name             string           `json:"name"`
	Email            string           `json:"email"` // calendar identity used to query/write busy intervals
	SchedulingSource SchedulingSource `json:"schedulingSource"`
	ExternalID       string           `json:"externalId,omitempty"`
	IsActive         bool             `json:"isActive"`
	Specialty        string           `json:"specialty,omitempty"`
	Bio              string           `json:"bio,omitempty"`
	AvatarURL        string           `json:"avatarUrl,omitempty"`
	Languages        []string         `json:"languages,omitempty"`
	Location         string           `json:"location,omitempty"`

	// Per-provider scheduling overrides; nil means "use the global default".
	OverrideStartHour *int  `json:"overrideStartHour,omitempty"`
	OverrideEndHour   *int  `json:"overrideEndHour,omitempty"`
	OverrideWorkDays  []int `json:"overrideWorkDays,omitempty"`
}

// CalendarBacked reports whether busy intervals can be fetched for this provider.
func (p ProviderProfile) CalendarBacked() bool {
	return p.SchedulingSource == SourceCalendar && p.Email != ""
}
