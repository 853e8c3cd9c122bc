package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service вычисляет сетку слотов рабочего дня и размечает её бронированиями.
// Состояния не хранит: сетка пересчитывается из конфигурации на каждый вызов
type Service struct {
	hours domain.BusinessHours
}

// NewService создает календарь для заданных рабочих часов
func NewService(hours domain.BusinessHours) (*Service, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}
	return &Service{hours: hours}, nil
}

// Hours возвращает конфигурацию сетки
func (s *Service) Hours() domain.BusinessHours {
	return s.hours
}

// SlotMinutes возвращает длительность слота
func (s *Service) SlotMinutes() int {
	return s.hours.SlotMinutes
}

// EnumerateSlots генерирует все слоты дня от начала работы с фиксированным шагом.
// Слот, который закончился бы позже конца рабочего дня, не создается
func (s *Service) EnumerateSlots() []types.TimeString {
	slots := make([]types.TimeString, 0, s.hours.SlotsPerDay())

	closeAt := s.hours.EndMinutes()
	for start := s.hours.StartMinutes(); start+s.hours.SlotMinutes <= closeAt; start += s.hours.SlotMinutes {
		slot, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			// конфигурация провалидирована в NewService, сюда не попадаем
			panic(fmt.Sprintf("calendar: slot %d out of day: %v", start, err))
		}
		slots = append(slots, slot)
	}

	return slots
}

// Annotate размечает сетку: слот reserved, если его время есть в reserved, иначе free.
// Дата в расчете не участвует: сетка одинакова для любого дня, прошлое не отсекается
func (s *Service) Annotate(_ time.Time, reserved domain.TimeSet) []domain.Slot {
	grid := s.EnumerateSlots()
	result := make([]domain.Slot, len(grid))

	for i, t := range grid {
		status := domain.SlotFree
		if reserved.Has(t) {
			status = domain.SlotReserved
		}
		result[i] = domain.Slot{Time: t, Status: status}
	}

	return result
}

// IsSlot проверяет, что время совпадает с началом одного из слотов сетки
func (s *Service) IsSlot(t types.TimeString) bool {
	m := t.Minutes()
	if m < 0 {
		return false
	}
	if m < s.hours.StartMinutes() || m+s.hours.SlotMinutes > s.hours.EndMinutes() {
		return false
	}
	return (m-s.hours.StartMinutes())%s.hours.SlotMinutes == 0
}
