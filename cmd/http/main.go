package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soulful-sync-service/internal/app/config"
	"soulful-sync-service/internal/app/delivery/http/controllers"
	"soulful-sync-service/internal/app/delivery/http/middlewares"
	"soulful-sync-service/internal/app/delivery/http/routers"
	"soulful-sync-service/internal/app/drivers/database"
	"soulful-sync-service/internal/app/drivers/logger"
	"soulful-sync-service/internal/app/drivers/messaging"
	"soulful-sync-service/internal/app/services/core/appointments"
	"soulful-sync-service/internal/app/services/core/availability"
	"soulful-sync-service/internal/app/services/core/bookings"
	"soulful-sync-service/internal/app/services/core/calendar"
	"soulful-sync-service/internal/app/services/core/session"
	"soulful-sync-service/internal/app/services/shared/bookingqueue"
	"soulful-sync-service/internal/app/services/shared/locker"
	sharedredis "soulful-sync-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitConn,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapTheApp(&bootstrap); err != nil {
		bootstrapLog.Fatalf("Failed to bootstrap the application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		bootstrapLog.Infof("HTTP server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	bootstrapLog.Println("Waiting for pending requests already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Fatalf("Failed to close application resources: %v", err)
	}

	bootstrapLog.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) error {
	// Shared services
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	sessionService := session.NewSessionService(redisRepository)

	queueService, err := bookingqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Booking.QueuePrefetch)
	if err != nil {
		return err
	}
	bootstrap.WorkerStop = func() {
		queueService.Close()
	}

	// Repositories
	availabilityRepository := availability.NewAvailabilityMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoClient, bootstrap.DriverConfig.MongoDB.DbName)

	// Usecases
	availabilityUsecase := availability.NewAvailabilityUsecase(availabilityRepository, lockService, bootstrap.InternalConfig, bootstrap.Logger)
	calendarUsecase := calendar.NewCalendarUsecase(availabilityRepository, appointmentRepository, bootstrap.InternalConfig, bootstrap.Logger)

	projector := calendar.NewProjector(calendar.OptionsFromConfig(bootstrap.InternalConfig))
	bookingUsecase := bookings.NewBookingUsecase(
		appointmentRepository,
		availabilityRepository,
		lockService,
		queueService,
		projector,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Controllers
	availabilityController := controllers.NewAvailabilityController(bootstrap.Logger, availabilityUsecase, sessionService)
	calendarController := controllers.NewCalendarController(bootstrap.Logger, calendarUsecase, bootstrap.InternalConfig)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase, sessionService)

	// Middlewares
	middlewareInstance := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		SessionService: sessionService,
		InternalConfig: bootstrap.InternalConfig,
	}

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewareInstance,
		availabilityController,
		calendarController,
		bookingController,
	)
	return nil
}
