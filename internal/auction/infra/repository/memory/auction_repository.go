package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
)

// AuctionRepository is a mutex-guarded in-memory implementation of
// domain.AuctionRepository, used by tests and the db-less local mode.
type AuctionRepository struct {
	mu       sync.RWMutex
	auctions map[uuid.UUID]*domain.Auction
}

func NewAuctionRepository() *AuctionRepository {
	return &AuctionRepository{auctions: make(map[uuid.UUID]*domain.Auction)}
}

func (r *AuctionRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	auction, ok := r.auctions[id]
	if !ok {
		return nil, domain.ErrAuctionNotFound
	}
	return auction, nil
}

func (r *AuctionRepository) GetByState(_ context.Context, state domain.AuctionState) ([]*domain.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Auction
	for _, a := range r.auctions {
		if a.State == state {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AuctionRepository) GetFinalizedByCategoryAndPeriod(_ context.Context, category string, from, to time.Time) ([]*domain.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Auction
	for _, a := range r.auctions {
		if a.State != domain.StateFinalized || a.Category != category {
			continue
		}
		if a.EndTime.Before(from) || a.EndTime.After(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *AuctionRepository) Create(_ context.Context, auction *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.ID] = auction
	return nil
}

func (r *AuctionRepository) Update(_ context.Context, auction *domain.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.ID] = auction
	return nil
}
