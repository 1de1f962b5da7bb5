package calendar

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"carebook/graph"
	"carebook/models"
	"carebook/utils"

	"go.uber.org/zap"
)

// GraphCalendarService implements CalendarService against Microsoft Graph.
type GraphCalendarService struct {
	Client *graph.Client
}

// NewGraphCalendarService returns a CalendarService backed by Graph.
func NewGraphCalendarService(client *graph.Client) *GraphCalendarService {
	return &GraphCalendarService{Client: client}
}

type graphDateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type calendarViewResponse struct {
	Value []struct {
		Start  graphDateTime `json:"start"`
		End    graphDateTime `json:"end"`
		ShowAs string        `json:"showAs"`
	} `json:"value"`
}

// Graph returns calendarView datetimes without a zone suffix.
const graphTimeLayout = "2006-01-02T15:04:05.0000000"

func parseGraphTime(dt graphDateTime) (time.Time, error) {
	loc := time.UTC
	if dt.TimeZone != "" && dt.TimeZone != "UTC" {
		if l, err := time.LoadLocation(dt.TimeZone); err == nil {
			loc = l
		}
	}
	t, err := time.ParseInLocation(graphTimeLayout, dt.DateTime, loc)
	if err != nil {
		// Some tenants return plain RFC3339.
		return time.Parse(time.RFC3339, dt.DateTime)
	}
	return t, nil
}

// GetBusyIntervals fetches the provider's calendar view for the range in a
// single query and keeps only events not marked free.
func (s *GraphCalendarService) GetBusyIntervals(ctx context.Context, providerEmail string, from, to time.Time) ([]models.BusyInterval, error) {
	query := url.Values{}
	query.Set("startDateTime", from.UTC().Format(time.RFC3339))
	query.Set("endDateTime", to.UTC().Format(time.RFC3339))
	query.Set("$select", "start,end,showAs")

	var resp calendarViewResponse
	path := fmt.Sprintf("/users/%s/calendarView", url.PathEscape(providerEmail))
	if err := s.Client.GetJSON(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch calendar view: %w", err)
	}

	logger := utils.GetLogger()
	busy := make([]models.BusyInterval, 0, len(resp.Value))
	for _, ev := range resp.Value {
		if ev.ShowAs == "free" {
			continue
		}
		start, err := parseGraphTime(ev.Start)
		if err != nil {
			logger.Warn("skipping unparseable calendar event", zap.String("start", ev.Start.DateTime), zap.Error(err))
			continue
		}
		end, err := parseGraphTime(ev.End)
		if err != nil {
			logger.Warn("skipping unparseable calendar event", zap.String("end", ev.End.DateTime), zap.Error(err))
			continue
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	return busy, nil
}

type createEventRequest struct {
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	Start  graphDateTime `json:"start"`
	End    graphDateTime `json:"end"`
	ShowAs string        `json:"showAs"`
}

type createEventResponse struct {
	ID string `json:"id"`
}

// CreateEvent writes a busy event for [start, end) onto the provider's calendar.
func (s *GraphCalendarService) CreateEvent(ctx context.Context, providerEmail string, start, end time.Time, patient models.IntakeDetails) (string, error) {
	var req createEventRequest
	req.Subject = fmt.Sprintf("New Patient: %s", patient.PatientName)
	req.Body.ContentType = "text"
	req.Body.Content = fmt.Sprintf("Visit Reason: %s\nPhone: %s\nEmail: %s",
		patient.VisitReason, patient.Phone, patient.Email)
	req.Start = graphDateTime{DateTime: start.UTC().Format(time.RFC3339), TimeZone: "UTC"}
	req.End = graphDateTime{DateTime: end.UTC().Format(time.RFC3339), TimeZone: "UTC"}
	req.ShowAs = "busy"

	var resp createEventResponse
	path := fmt.Sprintf("/users/%s/events", url.PathEscape(providerEmail))
	if err := s.Client.PostJSON(ctx, path, req, &resp); err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return resp.ID, nil
}
