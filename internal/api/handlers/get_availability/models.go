package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// SlotResponse слот с его статусом
type SlotResponse struct {
	Time   string `json:"time"`   // "10:00"
	Status string `json:"status"` // "free" | "reserved"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date          string         `json:"date"`
	SlotMinutes   int            `json:"slotMinutes"`
	FreeCount     int            `json:"freeCount"`
	ReservedCount int            `json:"reservedCount"`
	Slots         []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:   s.Time.String(),
			Status: string(s.Status),
		})
	}

	return &AvailabilityResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		SlotMinutes:   resp.SlotMinutes,
		FreeCount:     resp.FreeCount,
		ReservedCount: resp.ReservedCount,
		Slots:         slots,
	}
}
