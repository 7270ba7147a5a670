package application

import (
	"errors"
	"testing"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func TestGetAuctionStateOpenAuctionShowsEverything(t *testing.T) {
	f := newFixture()
	auction := f.seedAuction(domain.StateActive)
	top := uuid.New()
	f.seedBid(auction.ID, uuid.New(), 150, testStart)
	f.seedBid(auction.ID, top, 200, testStart.Add(time.Minute))

	state, err := NewGetAuctionStateUseCase(f.auctionRepo, f.bidRepo).Execute(f.ctx, auction.ID)
	assert.NoError(t, err)

	assert.True(t, state.MinPrice != nil)
	check.True(t, state.MinPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, state.HighestBidAmount != nil)
	check.True(t, state.HighestBidAmount.Equal(decimal.NewFromInt(200)))
	check.Equal(t, top, *state.HighestBidUserID)
	assert.True(t, state.BidCount != nil)
	check.Equal(t, 2, *state.BidCount)
}

func TestGetAuctionStateBlindAuctionHidesAmounts(t *testing.T) {
	f := newFixture()
	auction := f.seedBlindAuction(domain.StateActive)
	f.seedBid(auction.ID, uuid.New(), 150, testStart)

	state, err := NewGetAuctionStateUseCase(f.auctionRepo, f.bidRepo).Execute(f.ctx, auction.ID)
	assert.NoError(t, err)

	check.True(t, state.MinPrice == nil)
	check.True(t, state.HighestBidAmount == nil)
	check.True(t, state.HighestBidUserID == nil)
	// the count itself is public once bidding starts
	assert.True(t, state.BidCount != nil)
	check.Equal(t, 1, *state.BidCount)
}

func TestGetAuctionStateBlindAuctionMinPriceOptIn(t *testing.T) {
	f := newFixture()
	auction := f.seedBlindAuction(domain.StateActive)
	auction.ShowMinPrice = true
	_ = f.auctionRepo.Update(f.ctx, auction)

	state, err := NewGetAuctionStateUseCase(f.auctionRepo, f.bidRepo).Execute(f.ctx, auction.ID)
	assert.NoError(t, err)
	assert.True(t, state.MinPrice != nil)
	check.True(t, state.MinPrice.Equal(decimal.NewFromInt(100)))
}

func TestGetAuctionStatePendingHidesBidCount(t *testing.T) {
	f := newFixture()
	auction := f.seedAuction(domain.StatePending)

	state, err := NewGetAuctionStateUseCase(f.auctionRepo, f.bidRepo).Execute(f.ctx, auction.ID)
	assert.NoError(t, err)
	check.True(t, state.BidCount == nil)
	check.True(t, state.HighestBidAmount == nil)
}

func TestGetAuctionStateFinalizedSnapshot(t *testing.T) {
	f := newFixture()
	winner := uuid.New()
	amount := decimal.NewFromInt(200)
	auction := f.seedAuction(domain.StateEnded)
	auction.FinalizeWithProvisionalWinner(winner, amount, testStart.Add(f.payment.PaymentDeadline))
	auction.ConfirmPayment()
	_ = f.auctionRepo.Update(f.ctx, auction)
	count := 0

	state, err := NewGetAuctionStateUseCase(f.auctionRepo, f.bidRepo).Execute(f.ctx, auction.ID)
	assert.NoError(t, err)

	minPrice := decimal.NewFromInt(100)
	want := &AuctionStateDTO{
		AuctionID:        auction.ID,
		Title:            "vintage camera",
		Type:             "open",
		State:            "finalized",
		EndTime:          auction.EndTime,
		MinPrice:         &minPrice,
		BidCount:         &count,
		WinnerID:         &winner,
		WinningBidAmount: &amount,
	}
	if diff := cmp.Diff(want, state, cmpopts.IgnoreFields(AuctionStateDTO{}, "HighestBidAmount", "HighestBidUserID")); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAuctionStateUnknownAuction(t *testing.T) {
	f := newFixture()
	_, err := NewGetAuctionStateUseCase(f.auctionRepo, f.bidRepo).Execute(f.ctx, uuid.New())
	check.True(t, errors.Is(err, domain.ErrAuctionNotFound))
}

func TestListActiveAuctionsFiltersByTime(t *testing.T) {
	f := newFixture()
	open := f.seedAuction(domain.StateActive)
	f.seedAuction(domain.StatePending)
	overdue := f.seedAuction(domain.StateActive)
	overdue.EndTime = testStart.Add(-time.Minute)
	_ = f.auctionRepo.Update(f.ctx, overdue)

	auctions, err := NewListActiveAuctionsUseCase(f.auctionRepo, f.clk).Execute(f.ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(auctions))
	check.Equal(t, open.ID, auctions[0].ID)
}
