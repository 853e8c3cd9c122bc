package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64   `json:"id"`
	ClientName  string  `json:"clientName"`
	Phone       string  `json:"phone"`
	Service     string  `json:"service"`
	Date        string  `json:"date"`        // "2024-06-01"
	Time        string  `json:"time"`        // "10:00"
	ScheduledAt string  `json:"scheduledAt"` // "2024-06-01T10:00"
	Note        *string `json:"note,omitempty"`
	CreatedAt   string  `json:"createdAt"` // RFC3339
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		ClientName:  r.ClientName,
		Phone:       r.Phone,
		Service:     r.Service,
		Date:        r.Date(),
		Time:        r.Time().String(),
		ScheduledAt: r.SlotKey(),
		Note:        r.Note,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r))
	}
	return resp
}
