// File: wrenchly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wrenchly/config"
	"wrenchly/cron"
	"wrenchly/database"
	appointmentRepoPkg "wrenchly/database/repository/appointment"
	catalogRepoPkg "wrenchly/database/repository/catalog"
	shopRepoPkg "wrenchly/database/repository/shop"
	"wrenchly/handlers"
	"wrenchly/middleware"
	"wrenchly/routes"
	"wrenchly/services/appointment"
	"wrenchly/services/booking"
	"wrenchly/services/calendar"
	"wrenchly/services/notification"
	"wrenchly/services/shop"
	"wrenchly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	shopRepo := shopRepoPkg.NewMongoShopRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// task queue client for scheduled completion.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(shopRepo, utils.GetCacheClient())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	shopService := &shop.DefaultShopService{
		ShopRepo:    shopRepo,
		CatalogRepo: catalogRepo,
	}

	bookingService := &booking.DefaultBookingSessionService{
		ShopRepo:    shopRepo,
		CatalogRepo: catalogRepo,
		ApptRepo:    apptRepo,
		Cache:       utils.GetSessionCacheClient(),
		Notify:      notificationService,
		SessionTTL:  time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
		WindowDays:  config.AppConfig.BookingWindowDays,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:        apptRepo,
		ShopRepo:    shopRepo,
		CatalogRepo: catalogRepo,
		Notify:      notificationService,
		Queue:       queueClient,
	}

	calendarService := &calendar.DefaultCalendarService{
		ShopRepo:    shopRepo,
		CatalogRepo: catalogRepo,
		ApptRepo:    apptRepo,
	}

	// handlers.
	handlers.ShopService = shopService
	handlers.BookingService = bookingService
	handlers.AppointmentService = appointmentService
	handlers.CalendarService = calendarService
	handlers.NotificationService = notificationService

	routes.RegisterRoutes(router, shopRepo)

	// background worker that completes confirmed appointments.
	cron.InitCompletionWorker(appointmentService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

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
