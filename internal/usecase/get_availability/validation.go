package get_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// parseDate валидирует и разбирает дату запроса в таймзоне заведения
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	return date, nil
}
