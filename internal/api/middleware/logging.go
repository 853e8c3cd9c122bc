package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Logging пишет строку лога на каждый запрос: метод, путь, статус, длительность, request id.
// Ставится после RequestID
func Logging(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			id := RequestIDFromContext(r.Context())
			elapsed := time.Since(start)
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, id)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, id)
			default:
				logger.Info("%s %s - %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, elapsed, id)
			}
		})
	}
}
