package application

import (
	"context"
	"fmt"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WithdrawBidDTO struct {
	BidID  uuid.UUID
	UserID uuid.UUID
}

type WithdrawBidUseCase struct {
	bidRepo     domain.BidRepository
	auctionRepo domain.AuctionRepository
	clk         clock.Clock
}

func NewWithdrawBidUseCase(bidRepo domain.BidRepository, auctionRepo domain.AuctionRepository, clk clock.Clock) *WithdrawBidUseCase {
	return &WithdrawBidUseCase{bidRepo: bidRepo, auctionRepo: auctionRepo, clk: clk}
}

func (uc *WithdrawBidUseCase) Execute(ctx context.Context, req WithdrawBidDTO) error {
	bid, err := uc.bidRepo.GetByID(ctx, req.BidID)
	if err != nil {
		return fmt.Errorf("withdraw bid: %w", err)
	}

	auction, err := uc.auctionRepo.GetByID(ctx, bid.AuctionID)
	if err != nil {
		return fmt.Errorf("withdraw bid: %w", err)
	}

	// ownership, one-way flag, auction still active, in that order
	if bid.UserID != req.UserID {
		return domain.ErrNotBidOwner
	}
	if bid.IsWithdrawn {
		return domain.ErrBidAlreadyWithdrawn
	}
	if !auction.IsActive(uc.clk.Now()) {
		return domain.ErrAuctionNotActive
	}

	bid.Withdraw()
	if err := uc.bidRepo.Update(ctx, bid); err != nil {
		return fmt.Errorf("withdraw bid: persist: %w", err)
	}

	log.Info("Bid withdrawn",
		zap.String("bidID", bid.ID.String()),
		zap.String("auctionID", bid.AuctionID.String()),
		zap.String("userID", bid.UserID.String()),
	)
	return nil
}
