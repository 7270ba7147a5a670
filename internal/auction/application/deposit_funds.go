package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrInvalidDepositAmount = errors.New("deposit amount must be positive")

type DepositFundsDTO struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// DepositFundsUseCase is a thin pass-through to the balance ledger so
// participants can top up. The engine itself only ever reads balances.
type DepositFundsUseCase struct {
	balanceRepo domain.BalanceRepository
}

func NewDepositFundsUseCase(balanceRepo domain.BalanceRepository) *DepositFundsUseCase {
	return &DepositFundsUseCase{balanceRepo: balanceRepo}
}

func (uc *DepositFundsUseCase) Execute(ctx context.Context, req DepositFundsDTO) error {
	if !req.Amount.IsPositive() {
		return ErrInvalidDepositAmount
	}
	if err := uc.balanceRepo.Deposit(ctx, req.UserID, req.Amount); err != nil {
		return fmt.Errorf("deposit funds: %w", err)
	}
	log.Info("Funds deposited",
		zap.String("userID", req.UserID.String()),
		zap.String("amount", req.Amount.String()),
	)
	return nil
}
