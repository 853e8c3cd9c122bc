package create_reservation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// candidate провалидированные данные запроса
type candidate struct {
	clientName  string
	phone       string
	service     string
	scheduledAt time.Time
	slot        types.TimeString
	note        *string
}

// validateRequest обрезает пробелы, проверяет обязательные поля и разбирает дату и время
func validateRequest(req *Request, loc *time.Location) (*candidate, error) {
	c := &candidate{
		clientName: strings.TrimSpace(req.ClientName),
		phone:      strings.TrimSpace(req.Phone),
		service:    strings.TrimSpace(req.Service),
	}
	date := strings.TrimSpace(req.Date)
	slot := strings.TrimSpace(req.Time)

	required := []struct {
		name  string
		value string
	}{
		{"clientName", c.clientName},
		{"phone", c.phone},
		{"service", c.service},
		{"date", date},
		{"time", slot},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
		if utf8.RuneCountInString(f.value) > domain.MaxTextFieldLength {
			return nil, fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, f.name, domain.MaxTextFieldLength)
		}
	}

	if note := strings.TrimSpace(req.Note); note != "" {
		if utf8.RuneCountInString(note) > domain.MaxNoteLength {
			return nil, fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
		}
		c.note = &note
	}

	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	ts, err := types.NewTimeStringFromString(slot)
	if err != nil {
		return nil, fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	}

	c.slot = ts
	c.scheduledAt = ts.On(day)

	return c, nil
}

// validateNotInPast проверяет, что до начала слота осталось не меньше minNotice
func validateNotInPast(scheduledAt, now time.Time, minNotice time.Duration) error {
	earliest := now.In(scheduledAt.Location()).Add(minNotice)
	if scheduledAt.Before(earliest) {
		if minNotice > 0 {
			return fmt.Errorf("%w: must book at least %d minutes in advance", ErrSlotInPast, int(minNotice.Minutes()))
		}
		return ErrSlotInPast
	}
	return nil
}
