package application

import (
	"context"
	"fmt"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuctionStateDTO is the output DTO exposing auction state to the UI/WS,
// already filtered by the visibility rules.
type AuctionStateDTO struct {
	AuctionID        uuid.UUID        `json:"auction_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Type             string           `json:"type"`
	State            string           `json:"state"`
	EndTime          time.Time        `json:"end_time"`
	Category         string           `json:"category,omitempty"`
	MinPrice         *decimal.Decimal `json:"min_price,omitempty"`
	HighestBidAmount *decimal.Decimal `json:"highest_bid_amount,omitempty"`
	HighestBidUserID *uuid.UUID       `json:"highest_bid_user_id,omitempty"`
	BidCount         *int             `json:"bid_count,omitempty"`
	WinnerID         *uuid.UUID       `json:"winner_id,omitempty"`
	WinningBidAmount *decimal.Decimal `json:"winning_bid_amount,omitempty"`
}

// GetAuctionStateUseCase retrieves the current state of an auction
type GetAuctionStateUseCase struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	visibility  domain.VisibilityService
}

// NewGetAuctionStateUseCase creates a new instance of GetAuctionStateUseCase.
func NewGetAuctionStateUseCase(auctionRepo domain.AuctionRepository, bidRepo domain.BidRepository) *GetAuctionStateUseCase {
	return &GetAuctionStateUseCase{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
	}
}

func (uc *GetAuctionStateUseCase) Execute(ctx context.Context, auctionID uuid.UUID) (*AuctionStateDTO, error) {
	auction, err := uc.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction state: %w", err)
	}

	dto := &AuctionStateDTO{
		AuctionID:        auction.ID,
		Title:            auction.Title,
		Description:      auction.Description,
		Type:             string(auction.Type),
		State:            string(auction.State),
		EndTime:          auction.EndTime,
		Category:         auction.Category,
		WinnerID:         auction.WinnerID,
		WinningBidAmount: auction.WinningBidAmount,
	}

	if uc.visibility.ShouldShowMinPrice(auction) {
		dto.MinPrice = &auction.MinPrice
	}

	if uc.visibility.ShouldShowHighestBid(auction) {
		highest, err := uc.bidRepo.GetHighestActiveByAuction(ctx, auctionID)
		if err != nil {
			return nil, fmt.Errorf("get auction state: highest bid: %w", err)
		}
		if highest != nil {
			dto.HighestBidAmount = &highest.Amount
			dto.HighestBidUserID = &highest.UserID
		}
	}

	if uc.visibility.ShouldShowBidCount(auction) {
		bids, err := uc.bidRepo.GetActiveByAuction(ctx, auctionID)
		if err != nil {
			return nil, fmt.Errorf("get auction state: bid count: %w", err)
		}
		count := len(bids)
		dto.BidCount = &count
	}

	return dto, nil
}

// ListActiveAuctionsUseCase lists every auction currently open for bidding
type ListActiveAuctionsUseCase struct {
	auctionRepo domain.AuctionRepository
	clk         clock.Clock
}

func NewListActiveAuctionsUseCase(auctionRepo domain.AuctionRepository, clk clock.Clock) *ListActiveAuctionsUseCase {
	return &ListActiveAuctionsUseCase{auctionRepo: auctionRepo, clk: clk}
}

func (uc *ListActiveAuctionsUseCase) Execute(ctx context.Context) ([]*domain.Auction, error) {
	auctions, err := uc.auctionRepo.GetByState(ctx, domain.StateActive)
	if err != nil {
		return nil, fmt.Errorf("list active auctions: %w", err)
	}

	now := uc.clk.Now()
	var open []*domain.Auction
	for _, a := range auctions {
		if a.IsActive(now) {
			open = append(open, a)
		}
	}
	return open, nil
}
