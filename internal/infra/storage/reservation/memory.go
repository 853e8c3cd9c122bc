package reservation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// MemoryRepository хранилище бронирований в памяти процесса.
// Проверка занятости и вставка выполняются под одной блокировкой на запись
type MemoryRepository struct {
	mu     sync.RWMutex
	bySlot map[string]*domain.Reservation // YYYY-MM-DDTHH:MM -> бронирование
	byDate map[string][]*domain.Reservation
	nextID int64
	now    func() time.Time
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bySlot: make(map[string]*domain.Reservation),
		byDate: make(map[string][]*domain.Reservation),
		now:    time.Now,
	}
}

// Create сохраняет бронирование, если слот свободен, иначе возвращает ErrSlotTaken
func (m *MemoryRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrExecQuery, err)
	}

	key := res.SlotKey()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.bySlot[key]; taken {
		return nil, fmt.Errorf("%w: %s", ErrSlotTaken, key)
	}

	m.nextID++
	stored := *res
	stored.ID = m.nextID
	stored.CreatedAt = m.now()
	if res.Note != nil {
		note := *res.Note
		stored.Note = &note
	}

	m.bySlot[key] = &stored
	m.byDate[stored.Date()] = append(m.byDate[stored.Date()], &stored)

	return clone(&stored), nil
}

// FindReservedTimes возвращает множество занятых времен суток на дату
func (m *MemoryRepository) FindReservedTimes(ctx context.Context, date time.Time) (domain.TimeSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindReservedTimes - %v", ErrExecQuery, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	reserved := domain.NewTimeSet()
	for _, res := range m.byDate[date.Format(domain.DateFormat)] {
		reserved.Add(res.Time())
	}
	return reserved, nil
}

// List возвращает все бронирования, сначала самые новые
func (m *MemoryRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - %v", ErrExecQuery, err)
	}

	m.mu.RLock()
	out := make([]*domain.Reservation, 0, len(m.bySlot))
	for _, res := range m.bySlot {
		out = append(out, clone(res))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func clone(res *domain.Reservation) *domain.Reservation {
	c := *res
	if res.Note != nil {
		note := *res.Note
		c.Note = &note
	}
	return &c
}
