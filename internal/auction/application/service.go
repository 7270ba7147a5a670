package application

import (
	"context"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
)

// AuctionService is the application interface of the auction module,
// exposes the use cases to the outer layers (http, ws, scheduler)
type AuctionService interface {
	CreateAuction(ctx context.Context, req CreateAuctionDTO) (*domain.Auction, error)
	PlaceBid(ctx context.Context, req PlaceBidDTO) (*domain.Bid, error)
	WithdrawBid(ctx context.Context, req WithdrawBidDTO) error
	FinalizeAuction(ctx context.Context, req FinalizeAuctionDTO) (FinalizeAuctionResult, error)
	ConfirmPayment(ctx context.Context, req ConfirmPaymentDTO) error
	ProcessPaymentDeadline(ctx context.Context, req ProcessDeadlineDTO) (ProcessDeadlineResult, error)
	GetAuctionState(ctx context.Context, auctionID uuid.UUID) (*AuctionStateDTO, error)
	GetAuctionBids(ctx context.Context, auctionID uuid.UUID, requestingUserID *uuid.UUID) ([]BidDetailsDTO, error)
	ListActiveAuctions(ctx context.Context) ([]*domain.Auction, error)
	DepositFunds(ctx context.Context, req DepositFundsDTO) error
}

type auctionService struct {
	createAuctionUC   *CreateAuctionUseCase
	placeBidUC        *PlaceBidUseCase
	withdrawBidUC     *WithdrawBidUseCase
	finalizeUC        *FinalizeAuctionUseCase
	confirmPaymentUC  *ConfirmPaymentUseCase
	processDeadlineUC *ProcessDeadlineUseCase
	getStateUC        *GetAuctionStateUseCase
	getBidsUC         *GetAuctionBidsUseCase
	listActiveUC      *ListActiveAuctionsUseCase
	depositUC         *DepositFundsUseCase
}

func NewAuctionService(
	createAuctionUC *CreateAuctionUseCase,
	placeBidUC *PlaceBidUseCase,
	withdrawBidUC *WithdrawBidUseCase,
	finalizeUC *FinalizeAuctionUseCase,
	confirmPaymentUC *ConfirmPaymentUseCase,
	processDeadlineUC *ProcessDeadlineUseCase,
	getStateUC *GetAuctionStateUseCase,
	getBidsUC *GetAuctionBidsUseCase,
	listActiveUC *ListActiveAuctionsUseCase,
	depositUC *DepositFundsUseCase,
) AuctionService {
	return &auctionService{
		createAuctionUC:   createAuctionUC,
		placeBidUC:        placeBidUC,
		withdrawBidUC:     withdrawBidUC,
		finalizeUC:        finalizeUC,
		confirmPaymentUC:  confirmPaymentUC,
		processDeadlineUC: processDeadlineUC,
		getStateUC:        getStateUC,
		getBidsUC:         getBidsUC,
		listActiveUC:      listActiveUC,
		depositUC:         depositUC,
	}
}

func (s *auctionService) CreateAuction(ctx context.Context, req CreateAuctionDTO) (*domain.Auction, error) {
	return s.createAuctionUC.Execute(ctx, req)
}

func (s *auctionService) PlaceBid(ctx context.Context, req PlaceBidDTO) (*domain.Bid, error) {
	return s.placeBidUC.Execute(ctx, req)
}

func (s *auctionService) WithdrawBid(ctx context.Context, req WithdrawBidDTO) error {
	return s.withdrawBidUC.Execute(ctx, req)
}

func (s *auctionService) FinalizeAuction(ctx context.Context, req FinalizeAuctionDTO) (FinalizeAuctionResult, error) {
	return s.finalizeUC.Execute(ctx, req)
}

func (s *auctionService) ConfirmPayment(ctx context.Context, req ConfirmPaymentDTO) error {
	return s.confirmPaymentUC.Execute(ctx, req)
}

func (s *auctionService) ProcessPaymentDeadline(ctx context.Context, req ProcessDeadlineDTO) (ProcessDeadlineResult, error) {
	return s.processDeadlineUC.Execute(ctx, req)
}

func (s *auctionService) GetAuctionState(ctx context.Context, auctionID uuid.UUID) (*AuctionStateDTO, error) {
	return s.getStateUC.Execute(ctx, auctionID)
}

func (s *auctionService) GetAuctionBids(ctx context.Context, auctionID uuid.UUID, requestingUserID *uuid.UUID) ([]BidDetailsDTO, error) {
	return s.getBidsUC.Execute(ctx, auctionID, requestingUserID)
}

func (s *auctionService) ListActiveAuctions(ctx context.Context) ([]*domain.Auction, error) {
	return s.listActiveUC.Execute(ctx)
}

func (s *auctionService) DepositFunds(ctx context.Context, req DepositFundsDTO) error {
	return s.depositUC.Execute(ctx, req)
}
