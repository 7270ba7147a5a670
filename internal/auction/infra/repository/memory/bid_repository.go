package memory

import (
	"context"
	"sync"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
)

type BidRepository struct {
	mu   sync.RWMutex
	bids map[uuid.UUID]*domain.Bid
}

func NewBidRepository() *BidRepository {
	return &BidRepository{bids: make(map[uuid.UUID]*domain.Bid)}
}

func (r *BidRepository) Create(_ context.Context, bid *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	r.bids[bid.ID] = bid
	return nil
}

func (r *BidRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bid, ok := r.bids[id]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	return bid, nil
}

func (r *BidRepository) GetByAuction(_ context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Bid
	for _, b := range r.bids {
		if b.AuctionID == auctionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BidRepository) GetActiveByAuction(_ context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Bid
	for _, b := range r.bids {
		if b.AuctionID == auctionID && !b.IsWithdrawn {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetHighestActiveByAuction breaks amount ties by the earliest placement
func (r *BidRepository) GetHighestActiveByAuction(_ context.Context, auctionID uuid.UUID) (*domain.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var highest *domain.Bid
	for _, b := range r.bids {
		if b.AuctionID != auctionID || b.IsWithdrawn {
			continue
		}
		switch {
		case highest == nil:
			highest = b
		case b.Amount.GreaterThan(highest.Amount):
			highest = b
		case b.Amount.Equal(highest.Amount) && b.PlacedAt.Before(highest.PlacedAt):
			highest = b
		}
	}
	return highest, nil
}

func (r *BidRepository) GetLatestUserBidForAuction(_ context.Context, auctionID, userID uuid.UUID) (*domain.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.Bid
	for _, b := range r.bids {
		if b.AuctionID != auctionID || b.UserID != userID {
			continue
		}
		if latest == nil || b.PlacedAt.After(latest.PlacedAt) {
			latest = b
		}
	}
	return latest, nil
}

func (r *BidRepository) Update(_ context.Context, bid *domain.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bids[bid.ID] = bid
	return nil
}
