package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

const (
	msgMissingDate    = "date is required"
	msgInvalidDate    = "invalid date format, expected YYYY-MM-DD"
	msgStorageFailure = "reservation storage is unavailable, please retry"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{Date: dateStr})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid date: date=%q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrStorage):
			h.logger.Error("GET /slots - Storage failure: date=%s, error=%v", dateStr, err)
			handlers.RespondStorageFailure(w, msgStorageFailure)

		default:
			h.logger.Error("GET /slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slots - Slots retrieved successfully: date=%s, free=%d, reserved=%d",
		response.Date, response.FreeCount, response.ReservedCount)
	handlers.RespondJSON(w, http.StatusOK, response)
}
