package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vikendica/config"
	"vikendica/controllers"
	_ "vikendica/docs"
	"vikendica/jobs"
	middlewares "vikendica/middleware"
	"vikendica/repositories"
	"vikendica/response"
	"vikendica/routes"
	"vikendica/services"
	"vikendica/services/logger"
	"vikendica/services/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	appLogger := logger.NewLogrusLogger(cfg.Log.Level)
	response.SetLogger(appLogger)

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
	appLogger.Info("connected to %s database", cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache services.ReservationCache
	if cfg.Redis.Enabled {
		rdb, err := config.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("redis unavailable, reservation lists are not cached: %v", err)
		} else {
			defer rdb.Close()
			cache = services.NewRedisReservationCache(rdb, cfg.Reservation.CacheTTL, appLogger)
		}
	}

	router, m, c := config.InitApp(cfg)
	router.Use(middlewares.RequestIDMiddleware(), middlewares.LoggerMiddleware(appLogger.Entry()))

	notifiers := notification.Multi{notification.NewMelodyService(m)}
	if cfg.Kafka.Enabled {
		kafkaService := notification.NewKafkaService(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaService.Close()
		notifiers = append(notifiers, kafkaService)
	}

	reservationRepo := repositories.NewReservationRepository(db)
	cottageRepo := repositories.NewCottageRepository(db)
	userRepo := repositories.NewUserRepository(db)
	clock := services.SystemClock()

	ratingService := services.NewRatingService(services.RatingServiceOptions{
		Reservations: reservationRepo,
		Cottages:     cottageRepo,
		Cache:        cache,
		Notifier:     notifiers,
		Logger:       appLogger.WithField("service", "ratings"),
		Clock:        clock,
	})
	reservationService := services.NewReservationService(services.ReservationServiceOptions{
		Reservations:      reservationRepo,
		Cottages:          cottageRepo,
		Users:             userRepo,
		Ratings:           ratingService,
		Cache:             cache,
		Notifier:          notifiers,
		Logger:            appLogger.WithField("service", "reservations"),
		Clock:             clock,
		CancelNoticeDays:  cfg.Reservation.CancelNoticeDays,
		StrictTransitions: cfg.Reservation.StrictTransitions,
	})

	if err := jobs.InitCronJobs(c, reservationService, cfg.Reservation.SweepSpec, appLogger.WithField("job", "sweep")); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)
	routes.SetupRoutes(router, routes.Handlers{
		Reservations: controllers.NewReservationController(reservationService),
		Ratings:      controllers.NewRatingController(ratingService),
		Health:       controllers.NewHealthController(db),
	}, cfg.JWT.Secret)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	cronCtx := c.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown: %v", err)
	}
	_ = m.Close()

	select {
	case <-cronCtx.Done():
	case <-shutdownCtx.Done():
		appLogger.Warn("sweep still running at shutdown")
	}
}
