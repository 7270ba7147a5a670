package application

import (
	"context"
	"fmt"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConfirmPaymentDTO struct {
	Role      domain.Role
	AuctionID uuid.UUID
}

// ConfirmPaymentUseCase settles a provisional winner before the deadline:
// the balance must cover the winning amount, then the winner becomes
// permanent.
type ConfirmPaymentUseCase struct {
	auctionRepo domain.AuctionRepository
	balanceRepo domain.BalanceRepository
	clk         clock.Clock
}

func NewConfirmPaymentUseCase(auctionRepo domain.AuctionRepository, balanceRepo domain.BalanceRepository, clk clock.Clock) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{auctionRepo: auctionRepo, balanceRepo: balanceRepo, clk: clk}
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, req ConfirmPaymentDTO) error {
	if !domain.CanConfirmPayment(req.Role) {
		return domain.ErrInsufficientPermissions
	}

	auction, err := uc.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}

	if !auction.HasProvisionalWinner() {
		return domain.ErrNoProvisionalWinner
	}
	if auction.IsPaymentDeadlinePassed(uc.clk.Now()) {
		return domain.ErrDeadlineAlreadyPassed
	}

	balance, err := uc.balanceRepo.GetBalance(ctx, *auction.ProvisionalWinnerID)
	if err != nil {
		return fmt.Errorf("confirm payment: read balance: %w", err)
	}
	if balance.LessThan(*auction.ProvisionalWinningAmount) {
		return domain.ErrInsufficientBalance
	}

	auction.ConfirmPayment()
	if err := uc.auctionRepo.Update(ctx, auction); err != nil {
		return fmt.Errorf("confirm payment: persist: %w", err)
	}

	log.Info("ConfirmPaymentUseCase: payment confirmed",
		zap.String("auctionID", auction.ID.String()),
		zap.String("winnerID", auction.WinnerID.String()),
	)
	return nil
}
