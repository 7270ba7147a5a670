package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
)

type CycleRepository struct {
	mu     sync.RWMutex
	cycles map[uuid.UUID]*domain.AuctionCycle
}

func NewCycleRepository() *CycleRepository {
	return &CycleRepository{cycles: make(map[uuid.UUID]*domain.AuctionCycle)}
}

func (r *CycleRepository) GetActiveCycle(_ context.Context, date time.Time) (*domain.AuctionCycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.cycles {
		if c.IsActive && c.ContainsDate(date) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *CycleRepository) GetCycleForDate(_ context.Context, date time.Time) (*domain.AuctionCycle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.cycles {
		if c.ContainsDate(date) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *CycleRepository) Create(_ context.Context, cycle *domain.AuctionCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles[cycle.ID] = cycle
	return nil
}

func (r *CycleRepository) Update(_ context.Context, cycle *domain.AuctionCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles[cycle.ID] = cycle
	return nil
}
