package memory

import (
	"context"
	"testing"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func TestGetHighestActiveByAuctionPrefersEarliestOnTie(t *testing.T) {
	repo := NewBidRepository()
	ctx := context.Background()
	auctionID := uuid.New()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	later := domain.NewBid(uuid.New(), auctionID, uuid.New(), decimal.NewFromInt(200), at.Add(time.Minute))
	earlier := domain.NewBid(uuid.New(), auctionID, uuid.New(), decimal.NewFromInt(200), at)
	assert.NoError(t, repo.Create(ctx, later))
	assert.NoError(t, repo.Create(ctx, earlier))

	highest, err := repo.GetHighestActiveByAuction(ctx, auctionID)
	assert.NoError(t, err)
	assert.True(t, highest != nil)
	check.Equal(t, earlier.ID, highest.ID)
}

func TestGetHighestActiveByAuctionSkipsWithdrawn(t *testing.T) {
	repo := NewBidRepository()
	ctx := context.Background()
	auctionID := uuid.New()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	top := domain.NewBid(uuid.New(), auctionID, uuid.New(), decimal.NewFromInt(300), at)
	top.Withdraw()
	runnerUp := domain.NewBid(uuid.New(), auctionID, uuid.New(), decimal.NewFromInt(200), at)
	assert.NoError(t, repo.Create(ctx, top))
	assert.NoError(t, repo.Create(ctx, runnerUp))

	highest, err := repo.GetHighestActiveByAuction(ctx, auctionID)
	assert.NoError(t, err)
	assert.True(t, highest != nil)
	check.Equal(t, runnerUp.ID, highest.ID)
}

func TestGetHighestActiveByAuctionEmpty(t *testing.T) {
	repo := NewBidRepository()
	highest, err := repo.GetHighestActiveByAuction(context.Background(), uuid.New())
	assert.NoError(t, err)
	check.True(t, highest == nil)
}

func TestGetLatestUserBidForAuction(t *testing.T) {
	repo := NewBidRepository()
	ctx := context.Background()
	auctionID, userID := uuid.New(), uuid.New()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := domain.NewBid(uuid.New(), auctionID, userID, decimal.NewFromInt(150), at)
	second := domain.NewBid(uuid.New(), auctionID, userID, decimal.NewFromInt(130), at.Add(time.Minute))
	other := domain.NewBid(uuid.New(), auctionID, uuid.New(), decimal.NewFromInt(500), at.Add(2*time.Minute))
	assert.NoError(t, repo.Create(ctx, first))
	assert.NoError(t, repo.Create(ctx, second))
	assert.NoError(t, repo.Create(ctx, other))

	latest, err := repo.GetLatestUserBidForAuction(ctx, auctionID, userID)
	assert.NoError(t, err)
	assert.True(t, latest != nil)
	check.Equal(t, second.ID, latest.ID)
}
