package domain

import (
	"sort"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// SlotStatus represents whether a slot can still be booked
type SlotStatus string

const (
	SlotFree     SlotStatus = "free"
	SlotReserved SlotStatus = "reserved"
)

// Slot represents one position of the daily grid with its status for a given date
type Slot struct {
	Time   types.TimeString
	Status SlotStatus
}

// IsFree returns true if the slot can be booked
func (s *Slot) IsFree() bool {
	return s.Status == SlotFree
}

// TimeSet is an unordered set of times of day already taken on some date
type TimeSet map[types.TimeString]struct{}

// NewTimeSet builds a set from the given times
func NewTimeSet(times ...types.TimeString) TimeSet {
	set := make(TimeSet, len(times))
	for _, t := range times {
		set.Add(t)
	}
	return set
}

// Add puts t into the set
func (s TimeSet) Add(t types.TimeString) {
	s[t] = struct{}{}
}

// Has reports whether t is in the set
func (s TimeSet) Has(t types.TimeString) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the set contents in ascending order
func (s TimeSet) Sorted() []types.TimeString {
	out := make([]types.TimeString, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IsBefore(out[j]) })
	return out
}

// CountFree returns the number of free slots
func CountFree(slots []Slot) int {
	free := 0
	for i := range slots {
		if slots[i].IsFree() {
			free++
		}
	}
	return free
}
