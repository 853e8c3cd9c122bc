package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func newDefault(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(domain.BusinessHours{SlotMinutes: 30, StartHour: 9, EndHour: 22})
	require.NoError(t, err)
	return svc
}

func TestEnumerateSlots_DefaultGrid(t *testing.T) {
	slots := newDefault(t).EnumerateSlots()

	require.Len(t, slots, 26)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("21:30"), slots[len(slots)-1])

	seen := make(map[types.TimeString]bool)
	for i, s := range slots {
		assert.False(t, seen[s], "duplicate slot %s", s)
		seen[s] = true
		if i > 0 {
			assert.True(t, slots[i-1].IsBefore(s), "slots not increasing at %d", i)
		}
	}
}

func TestEnumerateSlots_Deterministic(t *testing.T) {
	svc := newDefault(t)
	assert.Equal(t, svc.EnumerateSlots(), svc.EnumerateSlots())
}

func TestEnumerateSlots_NoPartialTrailingSlot(t *testing.T) {
	svc, err := NewService(domain.BusinessHours{SlotMinutes: 45, StartHour: 9, EndHour: 11})
	require.NoError(t, err)

	// 09:00-09:45, 09:45-10:30; 10:30-11:15 не помещается
	assert.Equal(t, []types.TimeString{"09:00", "09:45"}, svc.EnumerateSlots())
}

func TestEnumerateSlots_UntilMidnight(t *testing.T) {
	svc, err := NewService(domain.BusinessHours{SlotMinutes: 60, StartHour: 22, EndHour: 24})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"22:00", "23:00"}, svc.EnumerateSlots())
}

func TestNewService_InvalidHours(t *testing.T) {
	_, err := NewService(domain.BusinessHours{SlotMinutes: 30, StartHour: 10, EndHour: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidBusinessHours)
}

func TestAnnotate_EmptyReservedAllFree(t *testing.T) {
	slots := newDefault(t).Annotate(time.Now(), domain.NewTimeSet())

	require.Len(t, slots, 26)
	for _, s := range slots {
		assert.Equal(t, domain.SlotFree, s.Status)
	}
}

func TestAnnotate_MarksExactlyReservedTimes(t *testing.T) {
	svc := newDefault(t)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []domain.TimeSet{
		domain.NewTimeSet("10:00"),
		domain.NewTimeSet("09:00", "21:30", "13:30"),
		// 08:00 и 10:15 не входят в сетку и не учитываются
		domain.NewTimeSet("08:00", "10:15", "12:00"),
		domain.NewTimeSet(svc.EnumerateSlots()...),
	}

	for _, reserved := range cases {
		slots := svc.Annotate(date, reserved)

		grid := domain.NewTimeSet(svc.EnumerateSlots()...)
		expectedReserved := 0
		for tm := range reserved {
			if grid.Has(tm) {
				expectedReserved++
			}
		}

		gotReserved := 0
		for _, s := range slots {
			if reserved.Has(s.Time) {
				assert.Equal(t, domain.SlotReserved, s.Status, "slot %s", s.Time)
				gotReserved++
			} else {
				assert.Equal(t, domain.SlotFree, s.Status, "slot %s", s.Time)
			}
		}
		assert.Equal(t, expectedReserved, gotReserved)
		assert.Equal(t, len(slots)-expectedReserved, domain.CountFree(slots))
	}
}

func TestIsSlot(t *testing.T) {
	svc := newDefault(t)

	assert.True(t, svc.IsSlot("09:00"))
	assert.True(t, svc.IsSlot("21:30"))
	assert.False(t, svc.IsSlot("22:00"))
	assert.False(t, svc.IsSlot("08:30"))
	assert.False(t, svc.IsSlot("10:15"))
	assert.False(t, svc.IsSlot("garbage"))
}
