package domain

// Default business hours
const (
	DefaultSlotMinutes = 30
	DefaultStartHour   = 9
	DefaultEndHour     = 22
)

// Business validation constants
const (
	MinSlotMinutes     = 5
	MaxSlotMinutes     = 480 // 8 hours
	MaxNoteLength      = 500
	MaxTextFieldLength = 200
)

// Time format constants
const (
	TimeFormat        = "15:04"            // HH:MM
	DateFormat        = "2006-01-02"       // YYYY-MM-DD
	ScheduledAtFormat = "2006-01-02T15:04" // YYYY-MM-DDTHH:MM
)
