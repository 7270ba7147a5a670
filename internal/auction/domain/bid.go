package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid is an immutable monetary offer on an auction. Amount, auction and user
// never change after creation, the only mutation ever applied is Withdraw.
type Bid struct {
	ID          uuid.UUID
	AuctionID   uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	PlacedAt    time.Time
	IsWithdrawn bool
}

// NewBid creates a new Bid instance
func NewBid(id, auctionID, userID uuid.UUID, amount decimal.Decimal, placedAt time.Time) *Bid {
	return &Bid{
		ID:        id,
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		PlacedAt:  placedAt,
	}
}

// Withdraw marks the bid withdrawn. The flag is one-way: withdrawing twice is
// a programming error, the command layer checks IsWithdrawn first.
func (b *Bid) Withdraw() {
	if b.IsWithdrawn {
		panic("bid: already withdrawn")
	}
	b.IsWithdrawn = true
}
