package directory

import (
	"testing"

	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderItem(t *testing.T) {
	item := listItem{
		ID: "4",
		Fields: map[string]any{
			"Title":            "Dr. Okafor",
			"Slug":             "dr-okafor",
			"Email":            "okafor@clinic.example",
			"Specialty":        "Family Medicine",
			"SchedulingSource": "Calendar",
			"Languages":        []any{"English", "Igbo"},
			"Location": map[string]any{
				"address": map[string]any{"city": "Columbus", "state": "OH"},
			},
			"OverrideStartHour": float64(10), // list numbers decode as float64
			"OverrideWorkDays":  "2,4",
		},
	}

	p := parseProviderItem(item)
	assert.Equal(t, "4", p.ID)
	assert.Equal(t, "Dr. Okafor", p.Name)
	assert.Equal(t, "dr-okafor", p.Slug)
	assert.Equal(t, models.SourceCalendar, p.SchedulingSource)
	assert.True(t, p.IsActive, "missing IsActive column defaults to active")
	assert.Equal(t, []string{"English", "Igbo"}, p.Languages)
	assert.Equal(t, "Columbus, OH", p.Location)

	require.NotNil(t, p.OverrideStartHour)
	assert.Equal(t, 10, *p.OverrideStartHour)
	assert.Nil(t, p.OverrideEndHour)
	assert.Equal(t, []int{2, 4}, p.OverrideWorkDays)
}

func TestParseProviderItemLooseColumnTypes(t *testing.T) {
	item := listItem{
		ID: "7",
		Fields: map[string]any{
			"Title":             "Dr. Reyes",
			"Slug":              "dr-reyes",
			"SchedulingSource":  "external",
			"IsActive":          false,
			"Languages":         "Spanish, English",
			"Location":          "Downtown office",
			"OverrideStartHour": "8", // numeric column arriving as a string
		},
	}

	p := parseProviderItem(item)
	assert.Equal(t, models.SourceExternal, p.SchedulingSource)
	assert.False(t, p.IsActive)
	assert.Equal(t, []string{"Spanish", "English"}, p.Languages)
	assert.Equal(t, "Downtown office", p.Location)
	require.NotNil(t, p.OverrideStartHour)
	assert.Equal(t, 8, *p.OverrideStartHour)
}

func TestParseRulesItem(t *testing.T) {
	item := listItem{
		ID: "1",
		Fields: map[string]any{
			"Title":               "DefaultOfficeHours",
			"StartHour":           float64(8),
			"EndHour":             float64(18),
			"AppointmentDuration": float64(20),
			"WorkDays":            "1,2,3,4,5,6",
		},
	}

	rules := parseRulesItem(item)
	assert.Equal(t, 8, rules.StartHour)
	assert.Equal(t, 18, rules.EndHour)
	assert.Equal(t, 20, rules.AppointmentDuration)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, rules.WorkDays)
}

func TestParseRulesItemPartialRecordKeepsDefaults(t *testing.T) {
	item := listItem{
		ID:     "1",
		Fields: map[string]any{"Title": "DefaultOfficeHours", "StartHour": float64(10)},
	}

	rules := parseRulesItem(item)
	assert.Equal(t, 10, rules.StartHour)
	assert.Equal(t, 17, rules.EndHour)
	assert.Equal(t, 30, rules.AppointmentDuration)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rules.WorkDays)
}

func TestParseWorkDays(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, parseWorkDays("1, 2, 3"))
	assert.Equal(t, []int{0, 6}, parseWorkDays("0,6"))
	assert.Nil(t, parseWorkDays("7,8,x"), "out-of-range and junk entries are dropped")
}
