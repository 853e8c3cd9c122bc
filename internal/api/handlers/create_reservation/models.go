package create_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ClientName string `json:"clientName"`
	Phone      string `json:"phone"`
	Service    string `json:"service"`
	Date       string `json:"date"` // "2024-06-01"
	Time       string `json:"time"` // "10:00"
	Note       string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		ClientName: r.ClientName,
		Phone:      r.Phone,
		Service:    r.Service,
		Date:       r.Date,
		Time:       r.Time,
		Note:       r.Note,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) models.ReservationResponse {
	return models.FromDomainReservation(&domain.Reservation{
		ID:          resp.ID,
		ClientName:  resp.ClientName,
		Phone:       resp.Phone,
		Service:     resp.Service,
		ScheduledAt: resp.ScheduledAt,
		Note:        resp.Note,
		CreatedAt:   resp.CreatedAt,
	})
}
