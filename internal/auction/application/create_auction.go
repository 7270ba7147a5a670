package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateAuctionDTO struct {
	Role              domain.Role
	Title             string
	Description       string
	StartTime         *time.Time
	EndTime           time.Time
	Type              domain.AuctionType
	MinimumIncrement  *decimal.Decimal
	MinPrice          decimal.Decimal
	SoftCloseWindow   *time.Duration
	ShowMinPrice      bool
	TieBreakingPolicy domain.TieBreakingPolicy
	Category          string
}

type CreateAuctionUseCase struct {
	auctionRepo domain.AuctionRepository
	clk         clock.Clock
}

func NewCreateAuctionUseCase(auctionRepo domain.AuctionRepository, clk clock.Clock) *CreateAuctionUseCase {
	return &CreateAuctionUseCase{auctionRepo: auctionRepo, clk: clk}
}

func (uc *CreateAuctionUseCase) Execute(ctx context.Context, req CreateAuctionDTO) (*domain.Auction, error) {
	if !domain.CanCreateAuction(req.Role) {
		return nil, domain.ErrInsufficientPermissions
	}

	now := uc.clk.Now()
	if err := validateCreateRequest(req, now); err != nil {
		return nil, err
	}

	auction := &domain.Auction{
		ID:                uuid.New(),
		Title:             req.Title,
		Description:       req.Description,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Type:              req.Type,
		MinimumIncrement:  req.MinimumIncrement,
		MinPrice:          req.MinPrice,
		SoftCloseWindow:   req.SoftCloseWindow,
		ShowMinPrice:      req.ShowMinPrice,
		TieBreakingPolicy: req.TieBreakingPolicy,
		Category:          req.Category,
		State:             domain.StatePending,
	}

	if err := uc.auctionRepo.Create(ctx, auction); err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}

	// auctions with no start time, or one already in the past, go live immediately
	if auction.CanTransitionToActive(now) {
		auction.TransitionToActive()
		if err := uc.auctionRepo.Update(ctx, auction); err != nil {
			return nil, fmt.Errorf("create auction: activate: %w", err)
		}
	}

	log.Info("Auction created",
		zap.String("auctionID", auction.ID.String()),
		zap.String("type", string(auction.Type)),
		zap.String("state", string(auction.State)),
	)
	return auction, nil
}

// validation order matches the registered validator list: title, time range, increment
func validateCreateRequest(req CreateAuctionDTO, now time.Time) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.ErrInvalidTitle
	}
	if req.StartTime != nil && !req.StartTime.Before(req.EndTime) {
		return domain.ErrInvalidTimeRange
	}
	if req.StartTime == nil && !now.Before(req.EndTime) {
		return domain.ErrInvalidTimeRange
	}
	if req.Type == domain.TypeOpen && (req.MinimumIncrement == nil || !req.MinimumIncrement.IsPositive()) {
		return domain.ErrInvalidIncrement
	}
	return nil
}
