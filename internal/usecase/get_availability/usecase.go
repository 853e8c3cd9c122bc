package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase use case для получения доступности слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	calendar        SlotCalendar
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	calendar SlotCalendar,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		calendar:        calendar,
		location:        location,
		logger:          logger,
	}
}

// Execute возвращает сетку слотов на дату со статусами free/reserved.
// Сетка строится заново на каждый запрос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	date, err := parseDate(req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	reserved, err := uc.reservationRepo.FindReservedTimes(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reserved times for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get reserved times: %v", ErrStorage, err)
	}

	slots := uc.calendar.Annotate(date, reserved)
	free := domain.CountFree(slots)

	uc.logger.Info("GetAvailability: date=%s, free=%d/%d", date.Format(domain.DateFormat), free, len(slots))

	return &Response{
		Date:          date,
		SlotMinutes:   uc.calendar.SlotMinutes(),
		Slots:         slots,
		FreeCount:     free,
		ReservedCount: len(slots) - free,
	}, nil
}
