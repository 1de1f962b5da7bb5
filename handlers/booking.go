package handlers

import (
	"net/http"
	"time"

	"carebook/models"
	"carebook/services/availability"
	"carebook/services/booking"
	"carebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewBookingHandler returns a handler bound to the booking service.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

const dateLayout = "2006-01-02"

// statusForError maps engine error codes onto HTTP statuses. Distinct codes
// stay distinct outward: an expired hold and a taken slot demand different
// caller recovery.
func statusForError(err error) (int, string) {
	if code := booking.ErrorCode(err); code != "" {
		switch code {
		case booking.CodeProviderNotFound:
			return http.StatusNotFound, code
		case booking.CodeInvalidSlot:
			return http.StatusBadRequest, code
		case booking.CodeHoldConflict:
			return http.StatusConflict, code
		case booking.CodeHoldExpired:
			return http.StatusGone, code
		case booking.CodeSlotNoLongerAvailable:
			return http.StatusConflict, code
		case booking.CodeExternalWriteFailed:
			return http.StatusBadGateway, code
		}
	}
	if code := availability.ErrorCode(err); code != "" {
		return http.StatusServiceUnavailable, code
	}
	return http.StatusInternalServerError, ""
}

// ListSlotsHandler returns the candidate slots for a provider and date.
func (h *BookingHandler) ListSlotsHandler(c *gin.Context) {
	slug := c.Param("slug")
	date, err := time.ParseInLocation(dateLayout, c.Query("date"), time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	slots, err := h.Svc.ListSlots(c.Request.Context(), slug, date)
	if err != nil {
		status, code := statusForError(err)
		utils.JSONCodedError(c, status, code, err.Error())
		return
	}

	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.Label)
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format(dateLayout),
		"slots": slots,
		"times": labels,
	})
}

type placeHoldInput struct {
	Provider string `json:"provider" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// PlaceHoldHandler claims a slot with a soft hold and returns its handle.
func (h *BookingHandler) PlaceHoldHandler(c *gin.Context) {
	var input placeHoldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	date, err := time.ParseInLocation(dateLayout, input.Date, time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	hold, err := h.Svc.PlaceHold(c.Request.Context(), input.Provider, date, input.Time)
	if err != nil {
		status, code := statusForError(err)
		utils.JSONCodedError(c, status, code, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"handle":      hold.Handle,
		"slotStart":   hold.SlotStart,
		"slotEnd":     hold.SlotEnd,
		"expiresAt":   hold.ExpiresAt,
		"secondsLeft": hold.SecondsLeft(time.Now()),
	})
}

// HoldStatusHandler reports whether a hold is still live and how long it has
// left. The countdown is computed on demand from the expiry timestamp.
func (h *BookingHandler) HoldStatusHandler(c *gin.Context) {
	handle := c.Param("handle")
	hold, live := h.Svc.HoldStatus(handle)
	if hold.Handle == "" {
		utils.JSONError(c, http.StatusNotFound, "hold not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"handle":      hold.Handle,
		"live":        live,
		"slotStart":   hold.SlotStart,
		"slotEnd":     hold.SlotEnd,
		"expiresAt":   hold.ExpiresAt,
		"secondsLeft": hold.SecondsLeft(time.Now()),
	})
}

// ReleaseHoldHandler terminates a hold. Idempotent; always succeeds.
func (h *BookingHandler) ReleaseHoldHandler(c *gin.Context) {
	h.Svc.ReleaseHold(c.Request.Context(), c.Param("handle"))
	c.Status(http.StatusNoContent)
}

type confirmBookingInput struct {
	HoldHandle string `json:"holdHandle" binding:"required"`
	models.IntakeDetails
}

// ConfirmBookingHandler commits a live hold into a confirmed booking.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	var input confirmBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bookingRecord, err := h.Svc.Commit(c.Request.Context(), input.HoldHandle, input.IntakeDetails)
	if err != nil {
		status, code := statusForError(err)
		utils.JSONCodedError(c, status, code, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": bookingRecord})
}
