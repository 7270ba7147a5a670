package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	auctiondomain "github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/MarharytaFilipovych/no-2/internal/shared/config"
	userdomain "github.com/MarharytaFilipovych/no-2/internal/user/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProcessDeadlineDTO struct {
	Role      auctiondomain.Role
	AuctionID uuid.UUID
}

// ProcessDeadlineResult is one settlement-cascade step reported as data.
// Exactly one of the three shapes holds: payment confirmed, a new
// provisional winner promoted, or all bids exhausted.
type ProcessDeadlineResult struct {
	PaymentConfirmed bool
	NewWinnerID      *uuid.UUID
	AllBidsExhausted bool
}

// ProcessDeadlineUseCase runs one step of the settlement cascade once a
// payment deadline has passed: confirm, or reject + ban + promote the next
// eligible bidder. Each call handles exactly one rejection, the next step is
// triggered by the promoted bidder's own deadline expiring.
type ProcessDeadlineUseCase struct {
	auctionRepo   auctiondomain.AuctionRepository
	bidRepo       auctiondomain.BidRepository
	cycleRepo     auctiondomain.CycleRepository
	balanceRepo   auctiondomain.BalanceRepository
	userRepo      userdomain.UserRepository
	clk           clock.Clock
	paymentConfig config.PaymentConfig
	selector      *auctiondomain.WinnerSelectionService
	settlement    auctiondomain.SettlementService
	noRepeat      auctiondomain.NoRepeatWinnerPolicy
	banPolicy     userdomain.BanPolicy
}

func NewProcessDeadlineUseCase(
	auctionRepo auctiondomain.AuctionRepository,
	bidRepo auctiondomain.BidRepository,
	cycleRepo auctiondomain.CycleRepository,
	balanceRepo auctiondomain.BalanceRepository,
	userRepo userdomain.UserRepository,
	clk clock.Clock,
	paymentConfig config.PaymentConfig,
	selector *auctiondomain.WinnerSelectionService,
) *ProcessDeadlineUseCase {
	return &ProcessDeadlineUseCase{
		auctionRepo:   auctionRepo,
		bidRepo:       bidRepo,
		cycleRepo:     cycleRepo,
		balanceRepo:   balanceRepo,
		userRepo:      userRepo,
		clk:           clk,
		paymentConfig: paymentConfig,
		selector:      selector,
	}
}

func (uc *ProcessDeadlineUseCase) Execute(ctx context.Context, req ProcessDeadlineDTO) (ProcessDeadlineResult, error) {
	if !auctiondomain.CanProcessPaymentDeadline(req.Role) {
		return ProcessDeadlineResult{}, auctiondomain.ErrInsufficientPermissions
	}

	auction, err := uc.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		return ProcessDeadlineResult{}, fmt.Errorf("process deadline: %w", err)
	}

	if !auction.HasProvisionalWinner() {
		return ProcessDeadlineResult{}, auctiondomain.ErrNoProvisionalWinner
	}
	now := uc.clk.Now()
	if !auction.IsPaymentDeadlinePassed(now) {
		return ProcessDeadlineResult{}, auctiondomain.ErrDeadlineNotPassed
	}

	balance, err := uc.balanceRepo.GetBalance(ctx, *auction.ProvisionalWinnerID)
	if err != nil {
		return ProcessDeadlineResult{}, fmt.Errorf("process deadline: read balance: %w", err)
	}

	activeBids, err := uc.bidRepo.GetActiveByAuction(ctx, auction.ID)
	if err != nil {
		return ProcessDeadlineResult{}, fmt.Errorf("process deadline: load bids: %w", err)
	}

	// recomputed on every step, other auctions in the category may have
	// finalized since the last one
	excluded, err := noRepeatExclusions(ctx, auction, uc.cycleRepo, uc.auctionRepo, uc.noRepeat, now)
	if err != nil {
		return ProcessDeadlineResult{}, fmt.Errorf("process deadline: %w", err)
	}

	outcome := uc.settlement.ProcessPaymentDeadline(
		auction,
		activeBids,
		balance,
		excluded,
		func(userID uuid.UUID) bool { return uc.isUserBanned(ctx, userID, now) },
	)

	if outcome.IsConfirmed {
		if err := uc.auctionRepo.Update(ctx, auction); err != nil {
			return ProcessDeadlineResult{}, fmt.Errorf("process deadline: persist: %w", err)
		}
		return ProcessDeadlineResult{PaymentConfirmed: true, NewWinnerID: outcome.ConfirmedWinnerID}, nil
	}

	if err := uc.banForPaymentFailure(ctx, *outcome.RejectedUserID, now); err != nil {
		return ProcessDeadlineResult{}, fmt.Errorf("process deadline: %w", err)
	}

	// the candidate set is already fully filtered, no extra exclusions here
	newWinner := uc.selector.SelectWinner(auction, outcome.EligibleBidsForPromotion, nil)
	if newWinner != nil {
		deadline := now.Add(uc.paymentConfig.PaymentDeadline)
		auction.SetProvisionalWinner(newWinner.UserID, newWinner.Amount, deadline)
		if err := uc.auctionRepo.Update(ctx, auction); err != nil {
			return ProcessDeadlineResult{}, fmt.Errorf("process deadline: persist: %w", err)
		}
		return ProcessDeadlineResult{NewWinnerID: &newWinner.UserID}, nil
	}

	// rejected with nobody left to promote: a valid terminal outcome, the
	// auction stays finalized with no winner
	if err := uc.auctionRepo.Update(ctx, auction); err != nil {
		return ProcessDeadlineResult{}, fmt.Errorf("process deadline: persist: %w", err)
	}
	log.Info("ProcessDeadlineUseCase: all bids exhausted",
		zap.String("auctionID", auction.ID.String()),
	)
	return ProcessDeadlineResult{AllBidsExhausted: true}, nil
}

func (uc *ProcessDeadlineUseCase) isUserBanned(ctx context.Context, userID uuid.UUID, now time.Time) bool {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		// unknown users cannot be banned, repository failures fall open here
		// and are caught again at promotion persist time
		return false
	}
	return user.IsBanned(now)
}

func (uc *ProcessDeadlineUseCase) banForPaymentFailure(ctx context.Context, userID uuid.UUID, now time.Time) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("load defaulting user %s: %w", userID, err)
	}

	uc.banPolicy.BanForPaymentFailure(user, now, uc.paymentConfig.BanDurationDays)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("persist ban for %s: %w", userID, err)
	}
	log.Info("User banned for payment failure",
		zap.String("userID", userID.String()),
		zap.Time("bannedUntil", *user.BannedUntil),
	)
	return nil
}
