package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс чтения занятых слотов
type ReservationRepository interface {
	FindReservedTimes(ctx context.Context, date time.Time) (domain.TimeSet, error)
}

// SlotCalendar интерфейс календаря слотов
type SlotCalendar interface {
	Annotate(date time.Time, reserved domain.TimeSet) []domain.Slot
	SlotMinutes() int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
