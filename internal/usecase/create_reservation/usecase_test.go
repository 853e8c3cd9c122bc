package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type outcomes struct {
	mu   sync.Mutex
	seen []string
}

func (o *outcomes) Record(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, outcome)
}

type failingRepository struct{ err error }

func (f failingRepository) Create(context.Context, *domain.Reservation) (*domain.Reservation, error) {
	return nil, f.err
}

// 2024-05-30 12:00 UTC: все слоты 2024-06-01 в будущем
var now = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, repo ReservationRepository, rec OutcomeRecorder, opts Options) *UseCase {
	t.Helper()

	cal, err := calendar.NewService(domain.DefaultBusinessHours())
	require.NoError(t, err)

	uc := NewUseCase(repo, cal, rec, opts, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientName: "Anna",
		Phone:      "0914000000",
		Service:    "Fade",
		Date:       "2024-06-01",
		Time:       "10:00",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := reservationRepo.NewMemoryRepository()
	rec := &outcomes{}
	uc := newUseCase(t, repo, rec, Options{RejectPast: true})

	req := validRequest()
	req.ClientName = "  Anna  "
	req.Note = "  first visit "

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Anna", resp.ClientName)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), resp.ScheduledAt)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "first visit", *resp.Note)
	assert.Equal(t, []string{metrics.OutcomeCreated}, rec.seen)
}

func TestExecute_BlankNoteStoredAsNil(t *testing.T) {
	uc := newUseCase(t, reservationRepo.NewMemoryRepository(), nil, Options{})

	req := validRequest()
	req.Note = "   "

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Nil(t, resp.Note)
}

func TestExecute_ValidationGate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "empty client name", mutate: func(r *Request) { r.ClientName = "" }, wantErr: ErrInvalidInput},
		{name: "blank client name", mutate: func(r *Request) { r.ClientName = "   " }, wantErr: ErrInvalidInput},
		{name: "empty phone", mutate: func(r *Request) { r.Phone = "" }, wantErr: ErrInvalidInput},
		{name: "empty service", mutate: func(r *Request) { r.Service = " " }, wantErr: ErrInvalidInput},
		{name: "empty date", mutate: func(r *Request) { r.Date = "" }, wantErr: ErrInvalidInput},
		{name: "empty time", mutate: func(r *Request) { r.Time = "" }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(r *Request) { r.Date = "2024/06/01" }, wantErr: ErrInvalidInput},
		{name: "bad time", mutate: func(r *Request) { r.Time = "10h" }, wantErr: ErrInvalidInput},
		{name: "off grid time", mutate: func(r *Request) { r.Time = "10:15" }, wantErr: ErrInvalidTimeSlot},
		{name: "before opening", mutate: func(r *Request) { r.Time = "08:30" }, wantErr: ErrInvalidTimeSlot},
		{name: "at closing", mutate: func(r *Request) { r.Time = "22:00" }, wantErr: ErrInvalidTimeSlot},
		{name: "past date", mutate: func(r *Request) { r.Date = "2024-05-29" }, wantErr: ErrSlotInPast},
		{name: "earlier today", mutate: func(r *Request) { r.Date = "2024-05-30"; r.Time = "11:30" }, wantErr: ErrSlotInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := reservationRepo.NewMemoryRepository()
			rec := &outcomes{}
			uc := newUseCase(t, repo, rec, Options{RejectPast: true})

			req := validRequest()
			tt.mutate(req)

			resp, err := uc.Execute(context.Background(), req)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{metrics.OutcomeRejected}, rec.seen)

			all, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestExecute_MinNotice(t *testing.T) {
	uc := newUseCase(t, reservationRepo.NewMemoryRepository(), nil, Options{RejectPast: true, MinNotice: time.Hour})

	req := validRequest()
	req.Date = "2024-05-30"

	req.Time = "12:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotInPast)

	req.Time = "13:00"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_PastAllowedWhenDisabled(t *testing.T) {
	uc := newUseCase(t, reservationRepo.NewMemoryRepository(), nil, Options{RejectPast: false})

	req := validRequest()
	req.Date = "2020-01-01"

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_Conflict(t *testing.T) {
	repo := reservationRepo.NewMemoryRepository()
	rec := &outcomes{}
	uc := newUseCase(t, repo, rec, Options{RejectPast: true})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.ClientName = "Binh"
	_, err = uc.Execute(context.Background(), second)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, []string{metrics.OutcomeCreated, metrics.OutcomeConflict}, rec.seen)
}

func TestExecute_StorageFailure(t *testing.T) {
	rec := &outcomes{}
	uc := newUseCase(t, failingRepository{err: errors.New("connection refused")}, rec, Options{})

	resp, err := uc.Execute(context.Background(), validRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, []string{metrics.OutcomeFailed}, rec.seen)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	repo := reservationRepo.NewMemoryRepository()
	uc := newUseCase(t, repo, nil, Options{RejectPast: true})

	const attempts = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if errors.Is(err, ErrSlotNotAvailable) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
}

// Сценарий: пустой день, бронь на 10:00, повторная бронь на 10:00 отклоняется,
// сетка показывает один занятый слот
func TestScenario_BookTenAMOnce(t *testing.T) {
	ctx := context.Background()
	repo := reservationRepo.NewMemoryRepository()

	cal, err := calendar.NewService(domain.DefaultBusinessHours())
	require.NoError(t, err)

	create := NewUseCase(repo, cal, nil, Options{RejectPast: true}, nopLogger{})
	create.timeProvider = fixedTime{now: now}
	availability := get_availability.NewUseCase(repo, cal, time.UTC, nopLogger{})

	before, err := availability.Execute(ctx, &get_availability.Request{Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, 26, before.FreeCount)

	_, err = create.Execute(ctx, validRequest())
	require.NoError(t, err)

	after, err := availability.Execute(ctx, &get_availability.Request{Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, 25, after.FreeCount)
	assert.Equal(t, 1, after.ReservedCount)
	for _, slot := range after.Slots {
		if slot.Time == types.TimeString("10:00") {
			assert.Equal(t, domain.SlotReserved, slot.Status)
		} else {
			assert.Equal(t, domain.SlotFree, slot.Status, slot.Time)
		}
	}

	again := validRequest()
	again.ClientName = "Binh"
	_, err = create.Execute(ctx, again)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	reserved, err := repo.FindReservedTimes(ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00"}, reserved.Sorted())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Anna", all[0].ClientName)
}
