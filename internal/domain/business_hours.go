package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidBusinessHours is returned when the slot grid configuration is inconsistent
var ErrInvalidBusinessHours = errors.New("domain: invalid business hours")

// BusinessHours defines the daily slot grid.
// StartHour is inclusive, EndHour is exclusive; slots step by SlotMinutes from StartHour
// and a slot that would end after EndHour is not produced.
type BusinessHours struct {
	SlotMinutes int
	StartHour   int
	EndHour     int
}

// DefaultBusinessHours returns the 09:00-22:00 grid with 30 minute slots
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		SlotMinutes: DefaultSlotMinutes,
		StartHour:   DefaultStartHour,
		EndHour:     DefaultEndHour,
	}
}

// Validate checks 0 <= StartHour < EndHour <= 24 and that at least one slot fits
func (h BusinessHours) Validate() error {
	if h.StartHour < 0 || h.EndHour > 24 || h.StartHour >= h.EndHour {
		return fmt.Errorf("%w: hours must satisfy 0 <= start(%d) < end(%d) <= 24",
			ErrInvalidBusinessHours, h.StartHour, h.EndHour)
	}
	if h.SlotMinutes < MinSlotMinutes || h.SlotMinutes > MaxSlotMinutes {
		return fmt.Errorf("%w: slot minutes %d out of range [%d, %d]",
			ErrInvalidBusinessHours, h.SlotMinutes, MinSlotMinutes, MaxSlotMinutes)
	}
	if h.SlotMinutes > h.EndMinutes()-h.StartMinutes() {
		return fmt.Errorf("%w: slot of %d minutes does not fit between %02d:00 and %02d:00",
			ErrInvalidBusinessHours, h.SlotMinutes, h.StartHour, h.EndHour)
	}
	return nil
}

// StartMinutes returns the opening time in minutes from midnight
func (h BusinessHours) StartMinutes() int {
	return h.StartHour * 60
}

// EndMinutes returns the closing time in minutes from midnight
func (h BusinessHours) EndMinutes() int {
	return h.EndHour * 60
}

// SlotsPerDay returns how many whole slots fit in the window
func (h BusinessHours) SlotsPerDay() int {
	if h.SlotMinutes <= 0 {
		return 0
	}
	return (h.EndMinutes() - h.StartMinutes()) / h.SlotMinutes
}

// TilesEvenly returns true if the window has no unused tail after the last slot
func (h BusinessHours) TilesEvenly() bool {
	return h.SlotMinutes > 0 && (h.EndMinutes()-h.StartMinutes())%h.SlotMinutes == 0
}
