package notification

import (
	"context"

	"carebook/models"
)

// NotificationService delivers patient-facing messages. Delivery is best
// effort; the booking outcome never depends on it.
type NotificationService interface {
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}
