package routes

import (
	"carebook/handlers"
	"carebook/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Provider *handlers.ProviderHandler
	Admin    *handlers.AdminHandler
}

// RegisterRoutes registers all endpoints for the booking engine.
func RegisterRoutes(r *gin.Engine, b *HandlerBundle) {
	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")
	{
		api.GET("/providers", b.Provider.ListProvidersHandler)
		api.GET("/providers/:slug", b.Provider.GetProviderHandler)
		api.GET("/providers/:slug/slots", b.Booking.ListSlotsHandler)

		api.POST("/holds", b.Booking.PlaceHoldHandler)
		api.GET("/holds/:handle", b.Booking.HoldStatusHandler)
		api.DELETE("/holds/:handle", b.Booking.ReleaseHoldHandler)

		api.POST("/book", b.Booking.ConfirmBookingHandler)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", b.Admin.LoginHandler)

		authed := admin.Group("")
		authed.Use(middleware.AdminAuthMiddleware())
		{
			authed.POST("/cache/invalidate", b.Admin.InvalidateCachesHandler)
			authed.GET("/bookings", b.Admin.ListBookingsHandler)
			authed.POST("/bookings/:id/cancel", b.Admin.CancelBookingHandler)
		}
	}
}
