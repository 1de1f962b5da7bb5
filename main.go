// File: carebook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carebook/config"
	"carebook/cron"
	"carebook/database"
	bookingRepo "carebook/database/repository/booking"
	"carebook/graph"
	"carebook/handlers"
	"carebook/middleware"
	"carebook/routes"
	"carebook/services/availability"
	"carebook/services/booking"
	"carebook/services/calendar"
	"carebook/services/directory"
	"carebook/services/notification"
	"carebook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	// External collaborators.
	graphClient := graph.NewClient()
	calendarService := calendar.NewGraphCalendarService(graphClient)
	directoryService := directory.NewDefaultDirectoryService(graphClient, utils.GetCacheClient())

	// Repositories.
	bookingsRepo := bookingRepo.NewMongoBookingRepo()

	// Core services.
	ruleResolver := availability.NewRuleResolver(directoryService, utils.GetCacheClient())
	availabilityService := &availability.DefaultAvailabilityService{
		Resolver: ruleResolver,
		Calendar: calendarService,
	}

	holdManager := booking.NewHoldManager(config.AppConfig.HoldTTL)
	stopSweeper := holdManager.StartSweeper(config.AppConfig.HoldSweepInterval)
	defer stopSweeper()

	notificationService := notification.NewWebhookNotificationService()
	cron.InitReminderWorker(notificationService)

	bookingService := &booking.DefaultBookingService{
		Directory:    directoryService,
		Availability: availabilityService,
		Calendar:     calendarService,
		Holds:        holdManager,
		Repo:         bookingsRepo,
		Reminders:    booking.NewAsynqReminderScheduler(),
	}

	// Handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	providerHandler := handlers.NewProviderHandler(directoryService)
	adminHandler := handlers.NewAdminHandler(directoryService, availabilityService, bookingsRepo)

	routes.RegisterRoutes(router, &routes.HandlerBundle{
		Booking:  bookingHandler,
		Provider: providerHandler,
		Admin:    adminHandler,
	})

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
