package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"carebook/config"
	"carebook/models"
	"carebook/utils"

	"go.uber.org/zap"
)

// WebhookNotificationService posts reminder payloads to a configured
// delivery webhook (the messaging gateway terminates email/SMS). When no
// webhook is configured the service is a logging no-op.
type WebhookNotificationService struct {
	URL        string
	HTTPClient *http.Client
}

// NewWebhookNotificationService builds the default notifier from AppConfig.
func NewWebhookNotificationService() *WebhookNotificationService {
	return &WebhookNotificationService{
		URL:        config.AppConfig.NotifyWebhookURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendReminder posts the payload to the webhook.
func (s *WebhookNotificationService) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	logger := utils.GetLogger()
	if s.URL == "" {
		logger.Info("no notification webhook configured, skipping reminder",
			zap.String("bookingId", payload.BookingID))
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode reminder payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver reminder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("reminder webhook returned status %d", resp.StatusCode)
	}

	logger.Info("reminder delivered",
		zap.String("bookingId", payload.BookingID),
		zap.String("patientEmail", payload.PatientEmail))
	return nil
}
