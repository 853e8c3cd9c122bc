package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса доступности на дату
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// Response модель ответа с размеченной сеткой слотов
type Response struct {
	Date          time.Time     // Запрошенная дата
	SlotMinutes   int           // Длительность слота
	Slots         []domain.Slot // Все слоты дня в порядке возрастания времени
	FreeCount     int           // Количество свободных слотов
	ReservedCount int           // Количество занятых слотов
}
