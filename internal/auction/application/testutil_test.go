package application

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/auction/infra/repository/memory"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/MarharytaFilipovych/no-2/internal/shared/config"
	usermemory "github.com/MarharytaFilipovych/no-2/internal/user/infra/repository/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fixture wires the use cases over in-memory repositories with a controlled
// clock and a seeded randomness source.
type fixture struct {
	ctx         context.Context
	auctionRepo *memory.AuctionRepository
	bidRepo     *memory.BidRepository
	balanceRepo *memory.BalanceRepository
	cycleRepo   *memory.CycleRepository
	userRepo    *usermemory.UserRepository
	clk         *clock.Fake
	payment     config.PaymentConfig
	rules       domain.BiddingRules
	selector    *domain.WinnerSelectionService
}

func newFixture() *fixture {
	return &fixture{
		ctx:         context.Background(),
		auctionRepo: memory.NewAuctionRepository(),
		bidRepo:     memory.NewBidRepository(),
		balanceRepo: memory.NewBalanceRepository(),
		cycleRepo:   memory.NewCycleRepository(),
		userRepo:    usermemory.NewUserRepository(),
		clk:         clock.NewFake(testStart),
		payment: config.PaymentConfig{
			PaymentDeadline: 3 * time.Hour,
			BanDurationDays: 7,
		},
		rules:    domain.NewBiddingRules(decimal.NewFromInt(1000000), decimal.NewFromInt(2)),
		selector: domain.NewWinnerSelectionService(rand.New(rand.NewPCG(42, 42))),
	}
}

func (f *fixture) placeBidUC() *PlaceBidUseCase {
	return NewPlaceBidUseCase(f.auctionRepo, f.bidRepo, f.balanceRepo, f.rules, f.clk)
}

func (f *fixture) finalizeUC() *FinalizeAuctionUseCase {
	return NewFinalizeAuctionUseCase(f.auctionRepo, f.bidRepo, f.cycleRepo, f.clk, f.payment, f.selector)
}

func (f *fixture) processDeadlineUC() *ProcessDeadlineUseCase {
	return NewProcessDeadlineUseCase(f.auctionRepo, f.bidRepo, f.cycleRepo, f.balanceRepo, f.userRepo, f.clk, f.payment, f.selector)
}

// seedAuction stores an open auction with min price 100 and increment 10 in
// the given state, ending one hour after the fixture start.
func (f *fixture) seedAuction(state domain.AuctionState) *domain.Auction {
	increment := decimal.NewFromInt(10)
	a := &domain.Auction{
		ID:                uuid.New(),
		Title:             "vintage camera",
		EndTime:           testStart.Add(time.Hour),
		Type:              domain.TypeOpen,
		MinimumIncrement:  &increment,
		MinPrice:          decimal.NewFromInt(100),
		TieBreakingPolicy: domain.TieBreakEarliest,
		State:             state,
	}
	_ = f.auctionRepo.Create(f.ctx, a)
	return a
}

func (f *fixture) seedBlindAuction(state domain.AuctionState) *domain.Auction {
	a := f.seedAuction(state)
	a.Type = domain.TypeBlind
	a.MinimumIncrement = nil
	_ = f.auctionRepo.Update(f.ctx, a)
	return a
}

// seedBid stores an active bid, giving the bidder enough balance to pass the
// ratio check for that amount.
func (f *fixture) seedBid(auctionID, userID uuid.UUID, amount int64, placedAt time.Time) *domain.Bid {
	bid := domain.NewBid(uuid.New(), auctionID, userID, decimal.NewFromInt(amount), placedAt)
	_ = f.bidRepo.Create(f.ctx, bid)
	f.balanceRepo.SetBalance(userID, decimal.NewFromInt(amount))
	return bid
}

// seedCycle installs an active cycle spanning the whole of June 2025.
func (f *fixture) seedCycle() *domain.AuctionCycle {
	cycle := &domain.AuctionCycle{
		ID:        uuid.New(),
		Name:      "june",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	_ = f.cycleRepo.Create(f.ctx, cycle)
	return cycle
}
