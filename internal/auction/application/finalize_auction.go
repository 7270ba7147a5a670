package application

import (
	"context"
	"fmt"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/MarharytaFilipovych/no-2/internal/shared/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type FinalizeAuctionDTO struct {
	Role      domain.Role
	AuctionID uuid.UUID
}

// FinalizeAuctionResult reports the provisional winner picked at finalize
// time, both fields are nil when the auction closed without a winner.
type FinalizeAuctionResult struct {
	WinnerID      *uuid.UUID
	WinningAmount *decimal.Decimal
}

// FinalizeAuctionUseCase transitions an ended auction to finalized, picking a
// provisional winner over the active bids with the no-repeat exclusions
// applied.
type FinalizeAuctionUseCase struct {
	auctionRepo   domain.AuctionRepository
	bidRepo       domain.BidRepository
	cycleRepo     domain.CycleRepository
	clk           clock.Clock
	paymentConfig config.PaymentConfig
	selector      *domain.WinnerSelectionService
	noRepeat      domain.NoRepeatWinnerPolicy
}

func NewFinalizeAuctionUseCase(
	auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	cycleRepo domain.CycleRepository,
	clk clock.Clock,
	paymentConfig config.PaymentConfig,
	selector *domain.WinnerSelectionService,
) *FinalizeAuctionUseCase {
	return &FinalizeAuctionUseCase{
		auctionRepo:   auctionRepo,
		bidRepo:       bidRepo,
		cycleRepo:     cycleRepo,
		clk:           clk,
		paymentConfig: paymentConfig,
		selector:      selector,
	}
}

func (uc *FinalizeAuctionUseCase) Execute(ctx context.Context, req FinalizeAuctionDTO) (FinalizeAuctionResult, error) {
	if !domain.CanFinalizeAuction(req.Role) {
		return FinalizeAuctionResult{}, domain.ErrInsufficientPermissions
	}

	auction, err := uc.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		return FinalizeAuctionResult{}, fmt.Errorf("finalize auction: %w", err)
	}

	// validation order: already finalized first, then not-yet-ended
	if auction.State == domain.StateFinalized {
		return FinalizeAuctionResult{}, domain.ErrAlreadyFinalized
	}
	if !auction.CanFinalize() {
		return FinalizeAuctionResult{}, domain.ErrAuctionNotEnded
	}

	now := uc.clk.Now()
	bids, err := uc.bidRepo.GetActiveByAuction(ctx, auction.ID)
	if err != nil {
		return FinalizeAuctionResult{}, fmt.Errorf("finalize auction: load bids: %w", err)
	}

	excluded, err := noRepeatExclusions(ctx, auction, uc.cycleRepo, uc.auctionRepo, uc.noRepeat, now)
	if err != nil {
		return FinalizeAuctionResult{}, fmt.Errorf("finalize auction: %w", err)
	}

	winner := uc.selector.SelectWinner(auction, bids, excluded)
	if winner != nil {
		deadline := now.Add(uc.paymentConfig.PaymentDeadline)
		auction.FinalizeWithProvisionalWinner(winner.UserID, winner.Amount, deadline)
	} else {
		auction.FinalizeWithNoWinner()
	}

	if err := uc.auctionRepo.Update(ctx, auction); err != nil {
		return FinalizeAuctionResult{}, fmt.Errorf("finalize auction: persist: %w", err)
	}

	if winner == nil {
		return FinalizeAuctionResult{}, nil
	}
	log.Info("FinalizeAuctionUseCase: provisional winner selected",
		zap.String("auctionID", auction.ID.String()),
		zap.String("winnerID", winner.UserID.String()),
		zap.String("amount", winner.Amount.String()),
	)
	return FinalizeAuctionResult{WinnerID: &winner.UserID, WinningAmount: &winner.Amount}, nil
}
