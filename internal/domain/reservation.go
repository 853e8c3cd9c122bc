package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Reservation represents a booked appointment.
// ScheduledAt is the unique key: at most one reservation per date+time.
type Reservation struct {
	ID          int64
	ClientName  string
	Phone       string
	Service     string
	ScheduledAt time.Time // wall-clock date+time in the business timezone, minute precision
	Note        *string
	CreatedAt   time.Time
}

// Date returns the calendar date part of ScheduledAt (YYYY-MM-DD)
func (r *Reservation) Date() string {
	return r.ScheduledAt.Format(DateFormat)
}

// Time returns the time-of-day part of ScheduledAt
func (r *Reservation) Time() types.TimeString {
	return types.NewTimeString(r.ScheduledAt)
}

// SlotKey returns the canonical string form of ScheduledAt (YYYY-MM-DDTHH:MM)
func (r *Reservation) SlotKey() string {
	return r.ScheduledAt.Format(ScheduledAtFormat)
}

// HasNote returns true if the reservation carries a non-empty note
func (r *Reservation) HasNote() bool {
	return r.Note != nil && *r.Note != ""
}
