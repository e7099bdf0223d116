package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/cancel_booking"
	createBlackoutDateHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/create_blackout_date"
	createBookingHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/create_booking"
	deleteBlackoutDateHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/delete_blackout_date"
	deleteTripTypeHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/delete_trip_type"
	getAvailabilityHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/get_availability"
	getBookingHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/get_booking"
	getCaptainBookingsHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/get_captain_bookings"
	getGuestBookingHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/get_guest_booking"
	getWeeklyAvailabilityHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/get_weekly_availability"
	listBlackoutDatesHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/list_blackout_dates"
	listTripTypesHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/list_trip_types"
	updateBookingStatusHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/update_booking_status"
	updateWeeklyAvailabilityHandler "github.com/ericfaux/dockslot-app-sub001/internal/api/handlers/update_weekly_availability"
	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/availability"
	"github.com/ericfaux/dockslot-app-sub001/internal/config"
	auditLogRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/auditlog"
	windowRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/availability"
	blackoutRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/blackout"
	bookingRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/booking"
	guestTokenRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/guesttoken"
	outboxRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/outbox"
	passengerRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/passenger"
	profileRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/profile"
	tripTypeRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/triptype"
	"github.com/ericfaux/dockslot-app-sub001/internal/jobs"
	"github.com/ericfaux/dockslot-app-sub001/internal/outbox"
	bookingsService "github.com/ericfaux/dockslot-app-sub001/internal/service/bookings"
	scheduleService "github.com/ericfaux/dockslot-app-sub001/internal/service/schedule"
	tripTypesService "github.com/ericfaux/dockslot-app-sub001/internal/service/triptypes"
	createBookingUC "github.com/ericfaux/dockslot-app-sub001/internal/usecase/create_booking"
	getAvailabilityUC "github.com/ericfaux/dockslot-app-sub001/internal/usecase/get_availability"
	"github.com/ericfaux/dockslot-app-sub001/pkg/codegen"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/logger"
	"github.com/ericfaux/dockslot-app-sub001/pkg/metrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/txmanager"
)

const rateLimitPrefix = "dockslot:ratelimit:"

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting DockSlot booking service...")

	// nil when disabled; every consumer treats a nil collector as a no-op
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Booking.TxRetries))

	// Repositories
	profiles := profileRepo.NewRepository(wrappedDB)
	tripTypes := tripTypeRepo.NewRepository(wrappedDB)
	windows := windowRepo.NewRepository(wrappedDB)
	blackouts := blackoutRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	guestTokens := guestTokenRepo.NewRepository(wrappedDB)
	passengers := passengerRepo.NewRepository(wrappedDB)
	auditLog := auditLogRepo.NewRepository(wrappedDB)
	outboxRepository := outboxRepo.NewRepository(wrappedDB)

	// Slot engine shared by the availability query and the booking commit
	generator := availability.NewGenerator(time.Duration(cfg.Booking.SlotStepMinutes)*time.Minute, log)
	resolver := availability.NewResolver(windows, blackouts, bookingRepository, generator, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(profiles, tripTypes, resolver, metricsCollector, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		createBookingUC.Repositories{
			Profiles:    profiles,
			TripTypes:   tripTypes,
			Bookings:    bookingRepository,
			GuestTokens: guestTokens,
			Passengers:  passengers,
			AuditLog:    auditLog,
			Outbox:      outboxRepository,
		},
		resolver,
		codegen.New(),
		txMgr,
		metricsCollector,
		createBookingUC.Options{
			MaxPartySize:  cfg.Booking.MaxPartySize,
			GuestTokenTTL: time.Duration(cfg.Booking.GuestTokenTTLDays) * 24 * time.Hour,
		},
		log,
	)

	// Services
	bookingSvc := bookingsService.NewService(bookingRepository, passengers, guestTokens, auditLog, outboxRepository, txMgr, log)
	scheduleSvc := scheduleService.NewService(windows, blackouts, txMgr, log)
	tripTypeSvc := tripTypesService.NewService(tripTypes, profiles, txMgr, log)

	// Handlers
	listTripTypes := listTripTypesHandler.NewHandler(tripTypeSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getGuestBooking := getGuestBookingHandler.NewHandler(bookingSvc, log)

	getCaptainBookings := getCaptainBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getWeeklyAvailability := getWeeklyAvailabilityHandler.NewHandler(scheduleSvc, log)
	updateWeeklyAvailability := updateWeeklyAvailabilityHandler.NewHandler(scheduleSvc, log)
	listBlackoutDates := listBlackoutDatesHandler.NewHandler(scheduleSvc, log)
	createBlackoutDate := createBlackoutDateHandler.NewHandler(scheduleSvc, log)
	deleteBlackoutDate := deleteBlackoutDateHandler.NewHandler(scheduleSvc, log)
	deleteTripType := deleteTripTypeHandler.NewHandler(tripTypeSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (guests)
	// ============================================================

	api.HandleFunc("/captains/{captainId}/trip-types", listTripTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/captains/{captainId}/trip-types/{tripTypeId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/guest/bookings/{token}", getGuestBooking.Handle).Methods(http.MethodGet)

	var redisClient *redis.Client
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed, rate limiting will fail open: %v", err)
		}
		cancelPing()

		limiter := middleware.NewRateLimiter(
			middleware.NewRedisCounter(redisClient, rateLimitPrefix),
			cfg.Redis.RateLimitRequests,
			time.Duration(cfg.Redis.RateLimitWindow)*time.Second,
			log,
		)
		createBookingRoute = limiter.Middleware(createBookingRoute)
		log.Info("Rate limiting enabled for POST /bookings (%d per %ds)",
			cfg.Redis.RateLimitRequests, cfg.Redis.RateLimitWindow)
	}
	api.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)

	// ============================================================
	// CAPTAIN ROUTES (Bearer JWT, subject = captain ID)
	// ============================================================

	captain := api.PathPrefix("/captain").Subrouter()
	captain.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer))

	captain.HandleFunc("/bookings", getCaptainBookings.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	captain.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	captain.HandleFunc("/availability", getWeeklyAvailability.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/availability", updateWeeklyAvailability.Handle).Methods(http.MethodPut)

	captain.HandleFunc("/blackout-dates", listBlackoutDates.Handle).Methods(http.MethodGet)
	captain.HandleFunc("/blackout-dates", createBlackoutDate.Handle).Methods(http.MethodPost)
	captain.HandleFunc("/blackout-dates/{blackoutId}", deleteBlackoutDate.Handle).Methods(http.MethodDelete)

	captain.HandleFunc("/trip-types/{tripTypeId}", deleteTripType.Handle).Methods(http.MethodDelete)

	// Background workers
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	if cfg.Kafka.Enabled {
		publisher := outbox.NewPublisher(
			outboxRepository,
			txMgr,
			outbox.NewKafkaWriter(outbox.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic}),
			log,
			metricsCollector,
			outbox.Config{
				Interval:  time.Duration(cfg.Kafka.PublishInterval) * time.Second,
				BatchSize: cfg.Kafka.BatchSize,
			},
		)
		workers.Add(1)
		go func() {
			defer workers.Done()
			publisher.Run(workersCtx)
		}()
	}

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(guestTokens, log, cfg.Jobs.TokenPurgeSchedule, cfg.Jobs.TokenRetentionDays)
		if err := scheduler.Start(); err != nil {
			log.Fatal("Failed to start job scheduler: %v", err)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	stopWorkers()
	workers.Wait()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
