package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ports consumed by the engine. Persistence mechanics (transactions,
// optimistic concurrency) live behind these interfaces.

type AuctionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Auction, error)
	GetByState(ctx context.Context, state AuctionState) ([]*Auction, error)
	// GetFinalizedByCategoryAndPeriod feeds the no-repeat-winner lookback:
	// finalized auctions of the category whose end time falls inside [from, to].
	GetFinalizedByCategoryAndPeriod(ctx context.Context, category string, from, to time.Time) ([]*Auction, error)
	Create(ctx context.Context, auction *Auction) error
	Update(ctx context.Context, auction *Auction) error
}

type BidRepository interface {
	Create(ctx context.Context, bid *Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bid, error)
	GetByAuction(ctx context.Context, auctionID uuid.UUID) ([]*Bid, error)
	GetActiveByAuction(ctx context.Context, auctionID uuid.UUID) ([]*Bid, error)
	// GetHighestActiveByAuction breaks amount ties by earliest placement.
	// Returns nil without error when the auction has no active bids.
	GetHighestActiveByAuction(ctx context.Context, auctionID uuid.UUID) (*Bid, error)
	// GetLatestUserBidForAuction returns the user's most recent bid on the
	// auction, withdrawn or not, or nil when they never bid.
	GetLatestUserBidForAuction(ctx context.Context, auctionID, userID uuid.UUID) (*Bid, error)
	Update(ctx context.Context, bid *Bid) error
}

// BalanceRepository is the external ledger. The engine reads balances and
// forwards deposits, custody itself is out of scope.
type BalanceRepository interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
}

type CycleRepository interface {
	// GetActiveCycle returns the active cycle containing the given date, or
	// nil when none is configured.
	GetActiveCycle(ctx context.Context, date time.Time) (*AuctionCycle, error)
	GetCycleForDate(ctx context.Context, date time.Time) (*AuctionCycle, error)
	Create(ctx context.Context, cycle *AuctionCycle) error
	Update(ctx context.Context, cycle *AuctionCycle) error
}
