package create_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotNotAvailable   = "this time slot is already reserved"
	msgInvalidTimeSlot    = "time does not match any slot of the day"
	msgSlotInPast         = "this time slot is in the past"
	msgStorageFailure     = "reservation storage is unavailable, please retry"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: time=%s", req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrSlotInPast):
			h.logger.Warn("POST /reservations - Slot in past: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			handlers.RespondBadRequest(w, validationMessage(err))

		case errors.Is(err, createReservation.ErrStorage):
			h.logger.Error("POST /reservations - Storage failure: %v", err)
			handlers.RespondStorageFailure(w, msgStorageFailure)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, scheduled_at=%s",
		result.ID, response.ScheduledAt)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// validationMessage убирает из текста ошибки префикс пакета,
// оставляя клиенту описание конкретного поля
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), createReservation.ErrInvalidInput.Error()+": ")
}
