package domain

import (
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

type AuctionType string

const (
	TypeOpen  AuctionType = "open"
	TypeBlind AuctionType = "blind"
)

type TieBreakingPolicy string

const (
	TieBreakEarliest          TieBreakingPolicy = "earliest"
	TieBreakRandomAmongEquals TieBreakingPolicy = "random_among_equals"
)

// AuctionState represents the actual lifecycle state of an auction.
// The only legal path is pending -> active -> ended -> finalized,
// monotonic, no skipping, no regression.
type AuctionState string

const (
	StatePending   AuctionState = "pending"
	StateActive    AuctionState = "active"
	StateEnded     AuctionState = "ended"
	StateFinalized AuctionState = "finalized"
)

// Auction is the aggregate root. It owns the lifecycle state machine and the
// settlement sub-state (provisional winner fields), there is no separate
// settlement entity.
type Auction struct {
	ID                uuid.UUID
	Title             string
	Description       string
	StartTime         *time.Time
	EndTime           time.Time
	Type              AuctionType
	MinimumIncrement  *decimal.Decimal
	MinPrice          decimal.Decimal
	SoftCloseWindow   *time.Duration
	ShowMinPrice      bool
	TieBreakingPolicy TieBreakingPolicy
	Category          string

	State AuctionState

	// permanent winner, set once and never changed after
	WinnerID         *uuid.UUID
	WinningBidAmount *decimal.Decimal

	// settlement sub-state, mutable only while Finalized
	ProvisionalWinnerID      *uuid.UUID
	ProvisionalWinningAmount *decimal.Decimal
	PaymentDeadline          *time.Time
	IsPaymentConfirmed       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether bids can land on this auction right now
func (a *Auction) IsActive(currentTime time.Time) bool {
	return a.State == StateActive && currentTime.Before(a.EndTime)
}

func (a *Auction) CanTransitionToActive(currentTime time.Time) bool {
	if a.State != StatePending {
		return false
	}
	if a.StartTime == nil {
		return true
	}
	return !currentTime.Before(*a.StartTime)
}

// TransitionToActive moves pending -> active. Calling it from any other state
// is a programming error, callers must check CanTransitionToActive first.
func (a *Auction) TransitionToActive() {
	if a.State != StatePending {
		panic("auction: can only transition to active from pending state")
	}
	a.State = StateActive
	log.Info("Auction activated",
		zap.String("auctionID", a.ID.String()),
		zap.Time("endTime", a.EndTime),
	)
}

func (a *Auction) CanTransitionToEnded(currentTime time.Time) bool {
	return a.State == StateActive && !currentTime.Before(a.EndTime)
}

func (a *Auction) TransitionToEnded() {
	if a.State != StateActive {
		panic("auction: can only transition to ended from active state")
	}
	a.State = StateEnded
	log.Info("Auction ended",
		zap.String("auctionID", a.ID.String()),
	)
}

func (a *Auction) CanFinalize() bool {
	return a.State == StateEnded
}

// FinalizeWithProvisionalWinner moves ended -> finalized with a tentative
// winner who has to confirm payment before the deadline.
func (a *Auction) FinalizeWithProvisionalWinner(winnerID uuid.UUID, amount decimal.Decimal, paymentDeadline time.Time) {
	if !a.CanFinalize() {
		panic("auction: can only finalize after the auction has ended")
	}
	a.State = StateFinalized
	a.ProvisionalWinnerID = &winnerID
	a.ProvisionalWinningAmount = &amount
	a.PaymentDeadline = &paymentDeadline
	a.IsPaymentConfirmed = false
	log.Info("Auction finalized with provisional winner",
		zap.String("auctionID", a.ID.String()),
		zap.String("provisionalWinnerID", winnerID.String()),
		zap.String("amount", amount.String()),
		zap.Time("paymentDeadline", paymentDeadline),
	)
}

// FinalizeWithNoWinner moves ended -> finalized without any winner, used when
// no bid clears the minimum price (or every bidder is excluded).
func (a *Auction) FinalizeWithNoWinner() {
	if !a.CanFinalize() {
		panic("auction: can only finalize after the auction has ended")
	}
	a.State = StateFinalized
	log.Info("Auction finalized with no winner",
		zap.String("auctionID", a.ID.String()),
	)
}

// SetProvisionalWinner installs a new tentative winner during the settlement
// cascade, after the previous one was rejected.
func (a *Auction) SetProvisionalWinner(winnerID uuid.UUID, amount decimal.Decimal, paymentDeadline time.Time) {
	if a.State != StateFinalized {
		panic("auction: provisional winner can only be set on a finalized auction")
	}
	a.ProvisionalWinnerID = &winnerID
	a.ProvisionalWinningAmount = &amount
	a.PaymentDeadline = &paymentDeadline
	a.IsPaymentConfirmed = false
	log.Info("Provisional winner promoted",
		zap.String("auctionID", a.ID.String()),
		zap.String("provisionalWinnerID", winnerID.String()),
		zap.String("amount", amount.String()),
	)
}

// HasProvisionalWinner is true iff a provisional winner is set and their
// payment is not confirmed yet.
func (a *Auction) HasProvisionalWinner() bool {
	return a.ProvisionalWinnerID != nil && !a.IsPaymentConfirmed
}

func (a *Auction) IsPaymentDeadlinePassed(currentTime time.Time) bool {
	return a.PaymentDeadline != nil && currentTime.After(*a.PaymentDeadline)
}

// ConfirmPayment turns the provisional winner into the permanent one and
// clears the payment deadline. The permanent winner never changes after this.
func (a *Auction) ConfirmPayment() {
	if !a.HasProvisionalWinner() {
		panic("auction: cannot confirm payment without a provisional winner")
	}
	a.WinnerID = a.ProvisionalWinnerID
	a.WinningBidAmount = a.ProvisionalWinningAmount
	a.IsPaymentConfirmed = true
	a.PaymentDeadline = nil
	log.Info("Payment confirmed, winner is now permanent",
		zap.String("auctionID", a.ID.String()),
		zap.String("winnerID", a.WinnerID.String()),
	)
}

// RejectProvisionalWinner drops the current tentative winner after a payment
// failure. The auction stays finalized and a new provisional winner may be
// promoted by the settlement cascade.
func (a *Auction) RejectProvisionalWinner() {
	if !a.HasProvisionalWinner() {
		panic("auction: cannot reject without a provisional winner")
	}
	rejected := a.ProvisionalWinnerID.String()
	a.ProvisionalWinnerID = nil
	a.ProvisionalWinningAmount = nil
	a.PaymentDeadline = nil
	log.Info("Provisional winner rejected",
		zap.String("auctionID", a.ID.String()),
		zap.String("rejectedUserID", rejected),
	)
}

// ExtendEndTime is the soft-close move: the end time grows by exactly the
// extension, it is never reset to now+extension, so every late bid buys a
// full fresh window.
func (a *Auction) ExtendEndTime(extension time.Duration) {
	if a.State != StateActive {
		panic("auction: can only extend active auctions")
	}
	originalEndTime := a.EndTime
	a.EndTime = a.EndTime.Add(extension)
	log.Info("Auction end time extended",
		zap.String("auctionID", a.ID.String()),
		zap.Time("originalEndTime", originalEndTime),
		zap.Time("newEndTime", a.EndTime),
		zap.Duration("extension", extension),
	)
}
