package handlers

import (
	"net/http"
	"time"

	"carebook/config"
	bookingRepo "carebook/database/repository/booking"
	"carebook/services/availability"
	"carebook/services/directory"
	"carebook/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler serves the administrative surface: login with the single
// administrative credential, cache invalidation, and booking lookups.
type AdminHandler struct {
	Directory    directory.DirectoryService
	Availability availability.AvailabilityService
	Bookings     bookingRepo.BookingRepository
}

// NewAdminHandler returns a handler bound to the admin collaborators.
func NewAdminHandler(dir directory.DirectoryService, avail availability.AvailabilityService, bookings bookingRepo.BookingRepository) *AdminHandler {
	return &AdminHandler{Directory: dir, Availability: avail, Bookings: bookings}
}

// LoginHandler exchanges the administrative password for a short-lived JWT.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hash := config.AppConfig.AdminPasswordHash
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateAdminToken(time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// InvalidateCachesHandler drops the directory and rules caches so the next
// request re-reads configuration from the source of truth.
func (h *AdminHandler) InvalidateCachesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Directory.InvalidateCaches(ctx); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to invalidate directory caches", err.Error())
		return
	}
	if err := h.Availability.InvalidateRules(ctx); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to invalidate rules cache", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"invalidated": true})
}

// ListBookingsHandler returns the booking records for a provider.
func (h *AdminHandler) ListBookingsHandler(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		utils.JSONError(c, http.StatusBadRequest, "providerId is required", "")
		return
	}
	bookings, err := h.Bookings.GetByProviderID(c.Request.Context(), providerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler flips a booking record to cancelled. The calendar
// event, if any, is removed out of band.
func (h *AdminHandler) CancelBookingHandler(c *gin.Context) {
	if err := h.Bookings.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// HealthHandler returns the latest stored health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
