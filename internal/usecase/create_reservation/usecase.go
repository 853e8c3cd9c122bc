package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	calendar        SlotCalendar
	recorder        OutcomeRecorder
	timeProvider    TimeProvider
	options         Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// recorder может быть nil, если метрики отключены
func NewUseCase(
	reservationRepo ReservationRepository,
	calendar SlotCalendar,
	recorder OutcomeRecorder,
	options Options,
	logger Logger,
) *UseCase {
	if options.Location == nil {
		options.Location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		calendar:        calendar,
		recorder:        recorder,
		timeProvider:    &RealTimeProvider{},
		options:         options,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости слота и запись выполняются хранилищем атомарно,
// при конфликте ничего не записывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: date=%s, time=%s, service=%q", req.Date, req.Time, req.Service)

	// 1. Валидация входных данных
	c, err := validateRequest(req, uc.options.Location)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.record(metrics.OutcomeRejected)
		return nil, err
	}

	// 2. Время должно совпадать с началом слота сетки
	if !uc.calendar.IsSlot(c.slot) {
		uc.logger.Warn("CreateReservation: %s is not a slot start", c.slot)
		uc.record(metrics.OutcomeRejected)
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, c.slot)
	}

	// 3. Слоты в прошлом не бронируются
	if uc.options.RejectPast {
		if err := validateNotInPast(c.scheduledAt, uc.timeProvider.Now(), uc.options.MinNotice); err != nil {
			uc.logger.Warn("CreateReservation: %s rejected: %v", c.scheduledAt.Format(domain.ScheduledAtFormat), err)
			uc.record(metrics.OutcomeRejected)
			return nil, err
		}
	}

	// 4. Атомарная вставка
	created, err := uc.reservationRepo.Create(ctx, &domain.Reservation{
		ClientName:  c.clientName,
		Phone:       c.phone,
		Service:     c.service,
		ScheduledAt: c.scheduledAt,
		Note:        c.note,
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateReservation: slot %s already taken", c.scheduledAt.Format(domain.ScheduledAtFormat))
			uc.record(metrics.OutcomeConflict)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		uc.record(metrics.OutcomeFailed)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrStorage, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d at %s",
		created.ID, created.SlotKey())
	uc.record(metrics.OutcomeCreated)

	return &Response{
		ID:          created.ID,
		ClientName:  created.ClientName,
		Phone:       created.Phone,
		Service:     created.Service,
		ScheduledAt: created.ScheduledAt,
		Note:        created.Note,
		CreatedAt:   created.CreatedAt,
	}, nil
}

func (uc *UseCase) record(outcome string) {
	if uc.recorder != nil {
		uc.recorder.Record(outcome)
	}
}
