package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carebook/config"
	"carebook/cron"
	"carebook/models"
	"carebook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderScheduler queues a patient reminder ahead of a confirmed booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking models.Booking) error
}

// AsynqReminderScheduler enqueues reminder tasks for the cron worker.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Lead   time.Duration
}

// NewAsynqReminderScheduler builds the scheduler from AppConfig.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		Client: asynq.NewClient(cron.ReminderRedisOpts()),
		Lead:   config.AppConfig.ReminderLeadTime,
	}
}

// ScheduleReminder enqueues a reminder to fire Lead before the slot start.
// Bookings nearer than the lead time get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking models.Booking) error {
	fireAt := booking.SlotStart.Add(-s.Lead)
	if !fireAt.After(time.Now()) {
		utils.GetLogger().Info("booking too near for a reminder, skipping",
			zap.String("bookingId", booking.ID))
		return nil
	}

	payload := models.ReminderPayload{
		BookingID:    booking.ID,
		ProviderID:   booking.ProviderID,
		ProviderName: booking.ProviderName,
		PatientName:  booking.Patient.PatientName,
		PatientEmail: booking.Patient.Email,
		SlotStart:    booking.SlotStart,
		Title:        "Appointment reminder",
		Body: fmt.Sprintf("Reminder: your appointment with %s is at %s.",
			booking.ProviderName, booking.SlotStart.Format("Mon Jan 2 3:04 PM")),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode reminder payload: %w", err)
	}

	task := asynq.NewTask(cron.TypeReminderSend, data)
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
