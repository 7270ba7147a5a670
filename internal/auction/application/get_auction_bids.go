package application

import (
	"context"
	"fmt"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidDetailsDTO hides the amount when the visibility rules say the requesting
// user may not see it yet (blind auctions while running).
type BidDetailsDTO struct {
	BidID       uuid.UUID        `json:"bid_id"`
	UserID      uuid.UUID        `json:"user_id"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	PlacedAt    time.Time        `json:"placed_at"`
	IsWithdrawn bool             `json:"is_withdrawn"`
}

type GetAuctionBidsUseCase struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	visibility  domain.VisibilityService
}

func NewGetAuctionBidsUseCase(auctionRepo domain.AuctionRepository, bidRepo domain.BidRepository) *GetAuctionBidsUseCase {
	return &GetAuctionBidsUseCase{auctionRepo: auctionRepo, bidRepo: bidRepo}
}

// Execute returns the auction's bid history. requestingUserID may be nil for
// anonymous readers, bid owners always see their own amounts.
func (uc *GetAuctionBidsUseCase) Execute(ctx context.Context, auctionID uuid.UUID, requestingUserID *uuid.UUID) ([]BidDetailsDTO, error) {
	auction, err := uc.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction bids: %w", err)
	}

	bids, err := uc.bidRepo.GetByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction bids: %w", err)
	}

	details := make([]BidDetailsDTO, 0, len(bids))
	for _, bid := range bids {
		dto := BidDetailsDTO{
			BidID:       bid.ID,
			UserID:      bid.UserID,
			PlacedAt:    bid.PlacedAt,
			IsWithdrawn: bid.IsWithdrawn,
		}
		if uc.visibility.CanViewBidDetails(auction, requestingUserID, bid.UserID) {
			amount := bid.Amount
			dto.Amount = &amount
		}
		details = append(details, dto)
	}
	return details, nil
}
