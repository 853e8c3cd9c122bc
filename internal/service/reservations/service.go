package reservations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис для просмотра бронирований администратором
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// List возвращает все бронирования, сначала самые новые
func (s *Service) List(ctx context.Context) (*models.ReservationListResponse, error) {
	list, err := s.reservationRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStorage, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}
