package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carebook/graph"
	"carebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendar(handler http.Handler) (*GraphCalendarService, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := graph.NewClientWith(server.URL, server.Client(), 5*time.Second)
	return NewGraphCalendarService(client), server
}

const calendarViewBody = `{
  "value": [
    {
      "start": {"dateTime": "2026-03-03T10:00:00.0000000", "timeZone": "UTC"},
      "end":   {"dateTime": "2026-03-03T11:00:00.0000000", "timeZone": "UTC"},
      "showAs": "busy"
    },
    {
      "start": {"dateTime": "2026-03-03T12:00:00.0000000", "timeZone": "UTC"},
      "end":   {"dateTime": "2026-03-03T13:00:00.0000000", "timeZone": "UTC"},
      "showAs": "free"
    },
    {
      "start": {"dateTime": "2026-03-03T14:00:00.0000000", "timeZone": "UTC"},
      "end":   {"dateTime": "2026-03-03T14:30:00.0000000", "timeZone": "UTC"},
      "showAs": "tentative"
    }
  ]
}`

func TestGetBusyIntervalsParsesAndFiltersFree(t *testing.T) {
	var gotPath, gotQuery string
	svc, server := newTestCalendar(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("$select")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(calendarViewBody))
	}))
	defer server.Close()

	from := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	busy, err := svc.GetBusyIntervals(context.Background(), "okafor@clinic.example", from, from.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, "/users/okafor@clinic.example/calendarView", gotPath)
	assert.Equal(t, "start,end,showAs", gotQuery)

	// The free event is dropped; busy and tentative both block.
	require.Len(t, busy, 2)
	assert.Equal(t, time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), busy[0].Start)
	assert.Equal(t, time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC), busy[0].End)
	assert.Equal(t, time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC), busy[1].Start)
}

func TestGetBusyIntervalsUpstreamErrorSurfaces(t *testing.T) {
	svc, server := newTestCalendar(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "ServiceUnavailable"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	from := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	busy, err := svc.GetBusyIntervals(context.Background(), "okafor@clinic.example", from, from.AddDate(0, 0, 1))
	require.Error(t, err, "an unreachable calendar is an error, never an empty busy list")
	assert.Nil(t, busy)
}

func TestGetBusyIntervalsRFC3339Fallback(t *testing.T) {
	body := `{"value": [{"start": {"dateTime": "2026-03-03T10:00:00Z", "timeZone": "UTC"},
		"end": {"dateTime": "2026-03-03T10:30:00Z", "timeZone": "UTC"}, "showAs": "busy"}]}`
	svc, server := newTestCalendar(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	from := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	busy, err := svc.GetBusyIntervals(context.Background(), "okafor@clinic.example", from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.True(t, busy[0].Start.Equal(time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)))
}

func TestCreateEventWritesBusyEvent(t *testing.T) {
	var got createEventRequest
	var gotPath string
	svc, server := newTestCalendar(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "evt-456"}`))
	}))
	defer server.Close()

	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	patient := models.IntakeDetails{
		PatientName: "Ada Obi",
		VisitReason: "Annual physical",
		Phone:       "+1 555 0100",
		Email:       "ada@example.com",
	}
	id, err := svc.CreateEvent(context.Background(), "okafor@clinic.example", start, start.Add(30*time.Minute), patient)
	require.NoError(t, err)

	assert.Equal(t, "evt-456", id)
	assert.Equal(t, "/users/okafor@clinic.example/events", gotPath)
	assert.Equal(t, "New Patient: Ada Obi", got.Subject)
	assert.Equal(t, "Visit Reason: Annual physical\nPhone: +1 555 0100\nEmail: ada@example.com", got.Body.Content)
	assert.Equal(t, "busy", got.ShowAs)
	assert.Equal(t, "2026-03-03T10:00:00Z", got.Start.DateTime)
	assert.Equal(t, "2026-03-03T10:30:00Z", got.End.DateTime)
}

func TestCreateEventUpstreamFailure(t *testing.T) {
	svc, server := newTestCalendar(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "InternalServerError"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateEvent(context.Background(), "okafor@clinic.example", start, start.Add(30*time.Minute), models.IntakeDetails{PatientName: "Ada Obi"})
	require.Error(t, err)
}
