package domain

import "errors"

// Domain validation failures. These are expected, caller-facing outcomes and
// are always returned, never panicked. Invariant violations (illegal state
// transition, double withdraw) panic instead, they mean the calling command
// skipped a required guard.
var (
	ErrAuctionNotFound         = errors.New("auction not found")
	ErrAuctionNotActive        = errors.New("auction is not active")
	ErrAuctionNotEnded         = errors.New("auction has not ended yet")
	ErrAlreadyFinalized        = errors.New("auction is already finalized")
	ErrBidTooLow               = errors.New("bid amount is too low")
	ErrExceedsMaxBidAmount     = errors.New("bid amount exceeds the maximum allowed")
	ErrExceedsBalanceLimit     = errors.New("bid amount exceeds the participant balance limit")
	ErrBidNotFound             = errors.New("bid not found")
	ErrNotBidOwner             = errors.New("bid belongs to another user")
	ErrBidAlreadyWithdrawn     = errors.New("bid is already withdrawn")
	ErrNoProvisionalWinner     = errors.New("auction has no provisional winner")
	ErrDeadlineNotPassed       = errors.New("payment deadline has not passed yet")
	ErrDeadlineAlreadyPassed   = errors.New("payment deadline has already passed")
	ErrInsufficientBalance     = errors.New("participant balance does not cover the winning amount")
	ErrInsufficientPermissions = errors.New("role is not allowed to perform this operation")
	ErrInvalidTitle            = errors.New("auction title cannot be empty")
	ErrInvalidTimeRange        = errors.New("auction end time must be after its start")
	ErrInvalidIncrement        = errors.New("open auctions require a positive minimum increment")
	ErrCycleNotFound           = errors.New("auction cycle not found")
)
