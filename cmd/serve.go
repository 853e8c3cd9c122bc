package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	healthHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/health"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendar"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	store, err := openStorage(ctx, cfg, log, metricsCollector)
	if err != nil {
		return err
	}
	defer store.Close()

	router, err := newRouter(cfg, log, store, metricsCollector)
	if err != nil {
		return err
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// newRouter собирает зависимости и маршруты API
func newRouter(cfg *config.Config, log *logger.Logger, store *storage, m *metrics.Metrics) (*mux.Router, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	cal, err := calendar.NewService(cfg.Hours())
	if err != nil {
		return nil, err
	}
	log.Info("Slot grid: %02d:00-%02d:00, %d min, %d slots per day",
		cfg.BusinessHours.StartHour, cfg.BusinessHours.EndHour, cfg.BusinessHours.SlotMinutes, cfg.Hours().SlotsPerDay())

	// Инициализируем сервисы и use cases
	var recorder createReservationUC.OutcomeRecorder
	if m != nil {
		recorder = metrics.NewReservationRecorder(m, cfg.Metrics.ServiceName)
	}

	reservationSvc := reservationsService.NewService(store.repo, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		store.repo,
		cal,
		recorder,
		createReservationUC.Options{
			Location:   loc,
			RejectPast: cfg.Booking.RejectPast,
			MinNotice:  cfg.MinNotice(),
		},
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(store.repo, cal, loc, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)

	health := healthHandler.NewHandler(store.pinger, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.NotFoundHandler = handlers.NotFoundHandler()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if m != nil {
		r.Use(middleware.MetricsMiddleware(m, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	return r, nil
}
