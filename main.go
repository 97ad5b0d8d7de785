package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabletalk/config"
	"tabletalk/cron"
	"tabletalk/database"
	bookingRepo "tabletalk/database/repository/booking"
	restaurantRepo "tabletalk/database/repository/restaurant"
	"tabletalk/handlers"
	"tabletalk/middleware"
	"tabletalk/routes"
	"tabletalk/services/dialogue"
	"tabletalk/services/tasks"
	"tabletalk/services/weather"
	"tabletalk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitDialogueCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	restRepo := restaurantRepo.NewMongoRestaurantRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.SeedRestaurants(seedCtx, restRepo, logger); err != nil {
		logger.Sugar().Fatalf("main: failed to seed restaurant catalog: %v", err)
	}
	seedCancel()

	// services.
	weatherSvc := weather.NewOpenWeatherService(
		config.AppConfig.OpenWeatherAPIKey,
		config.AppConfig.WeatherFallbackCity,
	)
	stateStore := dialogue.NewRedisStateStore(utils.GetDialogueCacheClient(), 30*time.Minute)
	reminderScheduler := tasks.NewAsynqReminderScheduler()

	dialogueSvc := &dialogue.DefaultDialogueService{
		Oracle:      dialogue.NewGeminiOracle(config.AppConfig.GeminiAPIKey),
		Weather:     weatherSvc,
		States:      stateStore,
		Restaurants: restRepo,
		Bookings:    bookRepo,
		Reminders:   reminderScheduler,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Chat:       handlers.NewChatHandler(dialogueSvc),
		Restaurant: handlers.NewRestaurantHandler(restRepo),
		Booking:    handlers.NewBookingHandler(dialogueSvc, bookRepo, restRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker.
	cron.InitReminderWorker()

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
