package directory

import (
	"strconv"
	"strings"

	"carebook/models"
)

// defaultRules mirrors the administrative defaults used when no
// DefaultOfficeHours record exists: 9-17, Mon-Fri, 30-minute appointments.
func defaultRules() models.SchedulingRules {
	return models.SchedulingRules{
		StartHour:           9,
		EndHour:             17,
		WorkDays:            []int{1, 2, 3, 4, 5},
		AppointmentDuration: 30,
	}
}

func parseRulesItem(item listItem) models.SchedulingRules {
	rules := defaultRules()

	if v, ok := numberField(item.Fields, "StartHour"); ok {
		rules.StartHour = v
	}
	if v, ok := numberField(item.Fields, "EndHour"); ok {
		rules.EndHour = v
	}
	if v, ok := numberField(item.Fields, "AppointmentDuration"); ok {
		rules.AppointmentDuration = v
	}
	if raw, ok := item.Fields["WorkDays"].(string); ok && strings.TrimSpace(raw) != "" {
		if days := parseWorkDays(raw); len(days) > 0 {
			rules.WorkDays = days
		}
	}
	return rules
}

// parseProviderItem maps a raw Providers list item onto a profile. List
// columns are loosely typed, so every field is parsed defensively.
func parseProviderItem(item listItem) models.ProviderProfile {
	fields := item.Fields

	p := models.ProviderProfile{
		ID:       item.ID,
		IsActive: true,
	}
	p.Slug, _ = fields["Slug"].(string)
	p.Name, _ = fields["Title"].(string)
	p.Email, _ = fields["Email"].(string)
	p.ExternalID, _ = fields["ExternalID"].(string)
	p.Specialty, _ = fields["Specialty"].(string)
	p.Bio, _ = fields["Bio"].(string)
	p.AvatarURL, _ = fields["AvatarUrl"].(string)

	if active, ok := fields["IsActive"].(bool); ok {
		p.IsActive = active
	}

	switch src, _ := fields["SchedulingSource"].(string); strings.ToLower(src) {
	case "external":
		p.SchedulingSource = models.SourceExternal
	default:
		p.SchedulingSource = models.SourceCalendar
	}

	// Location can be a complex object or a plain string.
	switch loc := fields["Location"].(type) {
	case string:
		p.Location = loc
	case map[string]any:
		if address, ok := loc["address"].(map[string]any); ok {
			var parts []string
			if city, _ := address["city"].(string); city != "" {
				parts = append(parts, city)
			}
			if state, _ := address["state"].(string); state != "" {
				parts = append(parts, state)
			}
			p.Location = strings.Join(parts, ", ")
		}
	}

	// Languages can be a list or a comma-separated string.
	switch langs := fields["Languages"].(type) {
	case []any:
		for _, l := range langs {
			if s, ok := l.(string); ok {
				p.Languages = append(p.Languages, s)
			}
		}
	case string:
		for _, s := range strings.Split(langs, ",") {
			if s = strings.TrimSpace(s); s != "" {
				p.Languages = append(p.Languages, s)
			}
		}
	}

	if v, ok := numberField(fields, "OverrideStartHour"); ok {
		p.OverrideStartHour = &v
	}
	if v, ok := numberField(fields, "OverrideEndHour"); ok {
		p.OverrideEndHour = &v
	}
	if raw, ok := fields["OverrideWorkDays"].(string); ok && strings.TrimSpace(raw) != "" {
		p.OverrideWorkDays = parseWorkDays(raw)
	}

	return p
}

// parseWorkDays parses a comma-separated weekday list like "1,2,3,4,5".
func parseWorkDays(raw string) []int {
	var days []int
	for _, part := range strings.Split(raw, ",") {
		if d, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && d >= 0 && d <= 6 {
			days = append(days, d)
		}
	}
	return days
}

// numberField reads a numeric list column that may arrive as float64,
// int, or string.
func numberField(fields map[string]any, name string) (int, bool) {
	switch v := fields[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if v == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}
