package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	tableReservations = "reservations"

	// SQLSTATE unique_violation
	uniqueViolation = "23505"

	// формат параметров для колонки TIMESTAMP (без таймзоны)
	timestampLayout = "2006-01-02 15:04:05"
)

var reservationColumns = []string{
	"id",
	"client_name",
	"phone",
	"service",
	"scheduled_at",
	"note",
	"created_at",
}

// Repository репозиторий бронирований в PostgreSQL.
// Уникальность scheduled_at обеспечивается ограничением UNIQUE в самой таблице,
// поэтому проверка конфликта и вставка выполняются одним INSERT
type Repository struct {
	db           DBExecutor
	location     *time.Location
	queryTimeout time.Duration
}

// NewRepository создает новый экземпляр репозитория бронирований.
// location - таймзона заведения, в которой интерпретируется scheduled_at.
// queryTimeout <= 0 отключает собственный таймаут запросов
func NewRepository(db DBExecutor, location *time.Location, queryTimeout time.Duration) *Repository {
	if location == nil {
		location = time.UTC
	}
	return &Repository{
		db:           db,
		location:     location,
		queryTimeout: queryTimeout,
	}
}

// Create сохраняет новое бронирование.
// Если на scheduled_at уже есть запись, INSERT падает на UNIQUE и возвращается ErrSlotTaken,
// при этом ничего не записывается
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"client_name",
			"phone",
			"service",
			"scheduled_at",
			"note",
		).
		Values(
			res.ClientName,
			res.Phone,
			res.Service,
			res.ScheduledAt.Format(timestampLayout),
			res.Note,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *res
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&created.CreatedAt,
	)

	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", ErrSlotTaken, res.SlotKey())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// FindReservedTimes возвращает множество занятых времен суток на дату
func (r *Repository) FindReservedTimes(ctx context.Context, date time.Time) (domain.TimeSet, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select("scheduled_at").
		From(tableReservations).
		Where(squirrel.GtOrEq{"scheduled_at": dayStart.Format(timestampLayout)}).
		Where(squirrel.Lt{"scheduled_at": dayEnd.Format(timestampLayout)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindReservedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindReservedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reserved := domain.NewTimeSet()
	for rows.Next() {
		var scheduledAt time.Time
		if err := rows.Scan(&scheduledAt); err != nil {
			return nil, fmt.Errorf("%w: FindReservedTimes - scan scheduled_at: %v", ErrScanRow, err)
		}
		reserved.Add(types.NewTimeString(scheduledAt))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindReservedTimes - rows error: %v", ErrScanRow, err)
	}

	return reserved, nil
}

// List возвращает все бронирования, сначала самые новые
func (r *Repository) List(ctx context.Context) ([]*domain.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var (
			res         domain.Reservation
			scheduledAt time.Time
			note        sql.NullString
		)

		err := rows.Scan(
			&res.ID,
			&res.ClientName,
			&res.Phone,
			&res.Service,
			&scheduledAt,
			&note,
			&res.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.ScheduledAt = r.wallClock(scheduledAt)
		if note.Valid {
			n := note.String
			res.Note = &n
		}

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// wallClock переносит значение TIMESTAMP (без таймзоны) в локацию заведения без сдвига часов
func (r *Repository) wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, r.location)
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
