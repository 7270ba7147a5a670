package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/MarharytaFilipovych/no-2/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PlaceBidDTO is the input for the PlaceBid useCase, contains the necesary data to make a bid
type PlaceBidDTO struct {
	AuctionID uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
}

// bidCheck is one step of the placement pipeline. The checks run in a fixed
// order and the first failure wins, later checks are skipped.
type bidCheck func(ctx context.Context, auction *domain.Auction, req PlaceBidDTO, now time.Time) error

// PlaceBidUseCase runs the bid validation pipeline, writes the bid and
// applies the soft-close extension when a late bid lands.
type PlaceBidUseCase struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	balanceRepo domain.BalanceRepository
	rules       domain.BiddingRules
	clk         clock.Clock
	checks      []bidCheck
}

// NewPlaceBidUseCase creates a new instance of PlaceBidUseCase, dependencies come through injection
func NewPlaceBidUseCase(
	auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	balanceRepo domain.BalanceRepository,
	rules domain.BiddingRules,
	clk clock.Clock,
) *PlaceBidUseCase {
	uc := &PlaceBidUseCase{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		balanceRepo: balanceRepo,
		rules:       rules,
		clk:         clk,
	}
	// canonical ordering: active -> absolute ceiling -> balance ceiling ->
	// type-specific rule (existence is checked at load time)
	uc.checks = []bidCheck{
		uc.checkAuctionActive,
		uc.checkMaxAmount,
		uc.checkBalanceRatio,
		uc.checkOpenIncrement,
	}
	return uc
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, req PlaceBidDTO) (*domain.Bid, error) {
	auction, err := uc.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		if !errors.Is(err, domain.ErrAuctionNotFound) {
			log.Error("PlaceBidUseCase: failed to get auction",
				zap.String("auctionID", req.AuctionID.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("place bid: %w", err)
	}

	now := uc.clk.Now()
	for _, check := range uc.checks {
		if err := check(ctx, auction, req, now); err != nil {
			log.Warn("Bid rejected",
				zap.String("auctionID", req.AuctionID.String()),
				zap.String("userID", req.UserID.String()),
				zap.String("amount", req.Amount.String()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	// blind auctions keep one active bid per user: a re-bid replaces the
	// previous one instead of failing
	if auction.Type == domain.TypeBlind {
		if err := uc.withdrawPreviousBlindBid(ctx, req.AuctionID, req.UserID); err != nil {
			return nil, fmt.Errorf("place bid: %w", err)
		}
	}

	bid := domain.NewBid(uuid.New(), req.AuctionID, req.UserID, req.Amount, now)
	if err := uc.bidRepo.Create(ctx, bid); err != nil {
		log.Error("PlaceBidUseCase: failed to save new bid",
			zap.String("auctionID", req.AuctionID.String()),
			zap.String("bidID", bid.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("place bid: failed to save bid: %w", err)
	}

	if err := uc.applySoftCloseIfNeeded(ctx, auction, now); err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	log.Info("Bid placed successfully",
		zap.String("auctionID", req.AuctionID.String()),
		zap.String("bidID", bid.ID.String()),
		zap.String("userID", req.UserID.String()),
		zap.String("amount", req.Amount.String()),
	)
	return bid, nil
}

func (uc *PlaceBidUseCase) checkAuctionActive(_ context.Context, auction *domain.Auction, _ PlaceBidDTO, now time.Time) error {
	if !auction.IsActive(now) {
		return domain.ErrAuctionNotActive
	}
	return nil
}

func (uc *PlaceBidUseCase) checkMaxAmount(_ context.Context, _ *domain.Auction, req PlaceBidDTO, _ time.Time) error {
	if !uc.rules.IsWithinMaxLimit(req.Amount) {
		return domain.ErrExceedsMaxBidAmount
	}
	return nil
}

func (uc *PlaceBidUseCase) checkBalanceRatio(ctx context.Context, _ *domain.Auction, req PlaceBidDTO, _ time.Time) error {
	balance, err := uc.balanceRepo.GetBalance(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("read balance for %s: %w", req.UserID, err)
	}
	if !uc.rules.IsWithinBalanceLimit(req.Amount, balance) {
		return domain.ErrExceedsBalanceLimit
	}
	return nil
}

// checkOpenIncrement enforces the open-auction floor: highest active bid (or
// min price when there is none) plus the minimum increment.
func (uc *PlaceBidUseCase) checkOpenIncrement(ctx context.Context, auction *domain.Auction, req PlaceBidDTO, _ time.Time) error {
	if auction.Type != domain.TypeOpen {
		return nil
	}
	highest, err := uc.bidRepo.GetHighestActiveByAuction(ctx, auction.ID)
	if err != nil {
		return fmt.Errorf("read highest bid for %s: %w", auction.ID, err)
	}

	floor := auction.MinPrice
	if highest != nil {
		floor = highest.Amount
	}
	if auction.MinimumIncrement != nil {
		floor = floor.Add(*auction.MinimumIncrement)
	}
	if req.Amount.LessThan(floor) {
		return domain.ErrBidTooLow
	}
	return nil
}

func (uc *PlaceBidUseCase) withdrawPreviousBlindBid(ctx context.Context, auctionID, userID uuid.UUID) error {
	previous, err := uc.bidRepo.GetLatestUserBidForAuction(ctx, auctionID, userID)
	if err != nil {
		return fmt.Errorf("read previous bid: %w", err)
	}
	if previous == nil || previous.IsWithdrawn {
		return nil
	}
	previous.Withdraw()
	if err := uc.bidRepo.Update(ctx, previous); err != nil {
		return fmt.Errorf("withdraw previous bid %s: %w", previous.ID, err)
	}
	log.Info("Previous blind bid auto-withdrawn",
		zap.String("auctionID", auctionID.String()),
		zap.String("userID", userID.String()),
		zap.String("bidID", previous.ID.String()),
	)
	return nil
}

func (uc *PlaceBidUseCase) applySoftCloseIfNeeded(ctx context.Context, auction *domain.Auction, now time.Time) error {
	if auction.SoftCloseWindow == nil {
		return nil
	}
	if auction.EndTime.Sub(now) > *auction.SoftCloseWindow {
		return nil
	}
	auction.ExtendEndTime(*auction.SoftCloseWindow)
	if err := uc.auctionRepo.Update(ctx, auction); err != nil {
		return fmt.Errorf("persist soft-close extension for %s: %w", auction.ID, err)
	}
	return nil
}
