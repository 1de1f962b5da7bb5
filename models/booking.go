package models

import "time"

// BookingStatus is the terminal outcome of a commit attempt.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingFailed    BookingStatus = "failed"
	BookingCancelled BookingStatus = "cancelled"
)

// IntakeDetails carries the patient payload collected before commit.
type IntakeDetails struct {
	PatientName string `json:"patientName" bson:"patientName" binding:"required"`
	VisitReason string `json:"visitReason" bson:"visitReason" binding:"required"`
	Phone       string `json:"phone" bson:"phone"`
	Email       string `json:"email" bson:"email" binding:"required,email"`
}

// Booking is created once by the committer, from a still-live hold, and is
// immutable afterwards (cancellation is a status flip on the record).
type Booking struct {
	ID              string        `json:"id" bson:"_id"`
	ProviderID      string        `json:"providerId" bson:"providerId"`
	ProviderName    string        `json:"providerName" bson:"providerName"`
	SlotStart       time.Time     `json:"slotStart" bson:"slotStart"`
	SlotEnd         time.Time     `json:"slotEnd" bson:"slotEnd"`
	Patient         IntakeDetails `json:"patient" bson:"patient"`
	ExternalEventID string        `json:"externalEventId" bson:"externalEventId"`
	Status          BookingStatus `json:"status" bson:"status"`
	CreatedAt       time.Time     `json:"createdAt" bson:"createdAt"`
}

// ReminderPayload is the task body queued for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID    string    `json:"bookingId"`
	ProviderID   string    `json:"providerId"`
	ProviderName string    `json:"providerName"`
	PatientName  string    `json:"patientName"`
	PatientEmail string    `json:"patientEmail"`
	SlotStart    time.Time `json:"slotStart"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
}
