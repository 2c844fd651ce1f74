package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	bookingRepoPkg "salonbook/database/repository/booking"
	salonRepoPkg "salonbook/database/repository/salon"
	userRepoPkg "salonbook/database/repository/user"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/routes"
	"salonbook/services/booking"
	"salonbook/services/events"
	"salonbook/services/notification"
	"salonbook/services/payment"
	"salonbook/services/salon"
	"salonbook/services/storage"
	"salonbook/services/tasks"
	"salonbook/services/user"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	rootCtx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	database.InitDB()
	db := database.Database()
	cache := utils.GetCacheClient()
	utils.StartHealthMonitor(rootCtx, cache, database.MongoClient)

	var store storage.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("cover images disabled", zap.Error(err))
	} else {
		store = storage.NewStorageService(cld)
	}

	var sender notification.MessageSender
	if fcm, err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Warn("push notifications will only be logged", zap.Error(err))
	} else {
		sender = fcm
	}

	var payments payment.PaymentService
	if config.AppConfig.StripeKey != "" {
		payments = payment.NewStripePaymentService(config.AppConfig.StripeKey, config.AppConfig.StripeCurrency, logger)
	} else {
		logger.Warn("STRIPE_KEY not set; prepaid bookings are unavailable")
	}

	wmPublisher, err := events.NewPublisherFromURL(config.AppConfig.AMQPURL, logger)
	if err != nil {
		logger.Fatal("main: failed to create event publisher", zap.Error(err))
	}
	eventPublisher := events.NewWatermillPublisher(wmPublisher, config.AppConfig.EventsTopic, logger)
	defer eventPublisher.Close()

	// reminder queue
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
	asynqClient := asynq.NewClient(redisOpts)
	defer asynqClient.Close()
	inspector := asynq.NewInspector(redisOpts)
	defer inspector.Close()
	reminders := tasks.NewAsynqReminderScheduler(asynqClient, inspector)

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo(db)
	salonRepo := salonRepoPkg.NewMongoSalonRepo(db)
	userRepo := userRepoPkg.NewMongoUserRepo(db)

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}

	salonService, err := salon.NewSalonService(salonRepo, salon.NewRedisSalonCache(cache), store, logger, config.SalonCacheTTL())
	if err != nil {
		logger.Fatal("main: failed to create salon service", zap.Error(err))
	}

	notificationService, err := notification.NewDefaultNotificationService(userService, sender, logger)
	if err != nil {
		logger.Fatal("main: failed to create notification service", zap.Error(err))
	}

	bookingService, err := booking.NewBookingService(booking.Config{
		Repo:               bookingRepo,
		Salons:             salonService,
		Users:              userService,
		Payments:           payments,
		Events:             eventPublisher,
		Reminders:          reminders,
		Clock:              utils.NewRealClock(),
		Logger:             logger,
		Location:           config.Location(),
		CancellationWindow: config.CancellationWindow(),
		ReminderLead:       config.ReminderLead(),
		RequirePayment:     config.AppConfig.RequirePayment,
	})
	if err != nil {
		logger.Fatal("main: failed to create booking service", zap.Error(err))
	}

	worker := cron.NewReminderWorker(redisOpts, bookingRepo, notificationService, logger)
	worker.Start()
	defer worker.Shutdown()

	go func() {
		n, err := bookingService.RescheduleReminders(rootCtx)
		if err != nil {
			logger.Warn("reminder resync incomplete", zap.Int("scheduled", n), zap.Error(err))
			return
		}
		logger.Info("reminders resynced", zap.Int("bookings", n))
	}()

	queueMonitor := asynqmon.New(asynqmon.Options{
		RootPath:     routes.QueueMonitorPath,
		RedisConnOpt: redisOpts,
	})
	defer queueMonitor.Close()

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService),
		Salon:        handlers.NewSalonHandler(salonService),
		Payment:      handlers.NewPaymentHandler(bookingService),
		Admin:        handlers.NewAdminHandler(bookingService, salonService),
		QueueMonitor: queueMonitor,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
