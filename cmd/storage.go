package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// reservationStore общий набор методов Repository и MemoryRepository
type reservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindReservedTimes(ctx context.Context, date time.Time) (domain.TimeSet, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// storage открытое хранилище бронирований
type storage struct {
	repo   reservationStore
	pinger pinger // nil для memory
	db     *sql.DB
	stopCh chan struct{}
}

// openDB открывает пул соединений PostgreSQL и проверяет соединение
func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// openStorage создает хранилище по database.driver.
// Если m не nil, запросы к PostgreSQL оборачиваются метриками
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage: reservations are lost on restart")
		return &storage{repo: reservationRepo.NewMemoryRepository()}, nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		applied, err := migrations.Up(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Migrations applied: %d new", len(applied))
	}

	s := &storage{db: db}

	if m != nil {
		s.stopCh = make(chan struct{})
		wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, s.stopCh)
		s.repo = reservationRepo.NewRepository(wrapped, loc, cfg.QueryTimeout())
		s.pinger = wrapped
		log.Info("Database metrics collection started")
	} else {
		s.repo = reservationRepo.NewRepository(db, loc, cfg.QueryTimeout())
		s.pinger = db
	}

	return s, nil
}

// Close останавливает сбор метрик пула и закрывает соединения
func (s *storage) Close() error {
	if s.stopCh != nil {
		close(s.stopCh)
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
