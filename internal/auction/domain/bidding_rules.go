package domain

import "github.com/shopspring/decimal"

// BiddingRules are the stateless global limit checks applied to every bid
// regardless of auction type.
type BiddingRules struct {
	maxBidAmount      decimal.Decimal
	balanceRatioLimit decimal.Decimal
}

// NewBiddingRules builds the rule set. Non-positive limits are a
// configuration bug, not a runtime condition, so they panic.
func NewBiddingRules(maxBidAmount, balanceRatioLimit decimal.Decimal) BiddingRules {
	if !maxBidAmount.IsPositive() {
		panic("bidding rules: max bid amount must be positive")
	}
	if !balanceRatioLimit.IsPositive() {
		panic("bidding rules: balance ratio limit must be positive")
	}
	return BiddingRules{
		maxBidAmount:      maxBidAmount,
		balanceRatioLimit: balanceRatioLimit,
	}
}

func (r BiddingRules) IsWithinMaxLimit(bidAmount decimal.Decimal) bool {
	return bidAmount.LessThanOrEqual(r.maxBidAmount)
}

func (r BiddingRules) IsWithinBalanceLimit(bidAmount, accountBalance decimal.Decimal) bool {
	return bidAmount.LessThanOrEqual(accountBalance.Mul(r.balanceRatioLimit))
}

// MaxAllowedBid returns the effective ceiling for a participant: the smaller
// of the balance-derived limit and the absolute maximum.
func (r BiddingRules) MaxAllowedBid(accountBalance decimal.Decimal) decimal.Decimal {
	balanceLimit := accountBalance.Mul(r.balanceRatioLimit)
	if balanceLimit.LessThan(r.maxBidAmount) {
		return balanceLimit
	}
	return r.maxBidAmount
}
