package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"

	pingTimeout = 2 * time.Second
)

// Response HTTP response model
type Response struct {
	Status string `json:"status"`
}

type Handler struct {
	pinger Pinger
	logger Logger
}

// NewHandler создает health handler. pinger может быть nil (хранилище в памяти)
func NewHandler(pinger Pinger, logger Logger) *Handler {
	return &Handler{
		pinger: pinger,
		logger: logger,
	}
}

// Handle GET /api/v1/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Error("GET /health - Database ping failed: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: statusUnavailable})
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: statusOK})
}
