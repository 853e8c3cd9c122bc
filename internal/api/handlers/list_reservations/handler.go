package list_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const msgStorageFailure = "reservation storage is unavailable, please retry"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		if errors.Is(err, reservations.ErrStorage) {
			h.logger.Error("GET /reservations - Storage failure: %v", err)
			handlers.RespondStorageFailure(w, msgStorageFailure)
			return
		}
		h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: count=%d", len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
