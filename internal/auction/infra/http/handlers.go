package http

import (
	"errors"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/application"
	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionHandler exposes the auction use cases over HTTP. It is a thin
// transport: parse, validate, call the service, map the error.
type AuctionHandler struct {
	service  application.AuctionService
	validate *validator.Validate
}

func NewAuctionHandler(service application.AuctionService) *AuctionHandler {
	return &AuctionHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *AuctionHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/auctions", h.createAuction)
	api.Get("/auctions", h.listActiveAuctions)
	api.Get("/auctions/:id", h.getAuction)
	api.Get("/auctions/:id/bids", h.getAuctionBids)
	api.Post("/auctions/:id/bids", h.placeBid)
	api.Post("/auctions/:id/finalize", h.finalizeAuction)
	api.Post("/auctions/:id/confirm-payment", h.confirmPayment)
	api.Post("/auctions/:id/process-deadline", h.processDeadline)
	api.Delete("/bids/:id", h.withdrawBid)
	api.Post("/participants/:id/deposit", h.depositFunds)
}

type createAuctionRequest struct {
	Title             string          `json:"title" validate:"required"`
	Description       string          `json:"description"`
	StartTime         *time.Time      `json:"start_time"`
	EndTime           time.Time       `json:"end_time" validate:"required"`
	Type              string          `json:"type" validate:"required,oneof=open blind"`
	MinimumIncrement  *string         `json:"minimum_increment"`
	MinPrice          decimal.Decimal `json:"min_price"`
	SoftCloseSeconds  *int64          `json:"soft_close_seconds" validate:"omitempty,gt=0"`
	ShowMinPrice      bool            `json:"show_min_price"`
	TieBreakingPolicy string          `json:"tie_breaking_policy" validate:"omitempty,oneof=earliest random_among_equals"`
	Category          string          `json:"category"`
}

func (h *AuctionHandler) createAuction(c *fiber.Ctx) error {
	var req createAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	dto := application.CreateAuctionDTO{
		Role:         roleFromHeader(c),
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Type:         domain.AuctionType(req.Type),
		MinPrice:     req.MinPrice,
		ShowMinPrice: req.ShowMinPrice,
		Category:     req.Category,
	}
	dto.TieBreakingPolicy = domain.TieBreakEarliest
	if req.TieBreakingPolicy != "" {
		dto.TieBreakingPolicy = domain.TieBreakingPolicy(req.TieBreakingPolicy)
	}
	if req.MinimumIncrement != nil {
		inc, err := decimal.NewFromString(*req.MinimumIncrement)
		if err != nil {
			return badRequest(c, "invalid minimum_increment")
		}
		dto.MinimumIncrement = &inc
	}
	if req.SoftCloseSeconds != nil {
		window := time.Duration(*req.SoftCloseSeconds) * time.Second
		dto.SoftCloseWindow = &window
	}

	auction, err := h.service.CreateAuction(c.Context(), dto)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"auction_id": auction.ID})
}

type placeBidRequest struct {
	UserID uuid.UUID       `json:"user_id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func (h *AuctionHandler) placeBid(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid auction id")
	}
	var req placeBidRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	bid, err := h.service.PlaceBid(c.Context(), application.PlaceBidDTO{
		AuctionID: auctionID,
		UserID:    req.UserID,
		Amount:    req.Amount,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bid_id": bid.ID})
}

func (h *AuctionHandler) withdrawBid(c *fiber.Ctx) error {
	bidID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid bid id")
	}
	userID, err := uuid.Parse(c.Get("X-User-ID"))
	if err != nil {
		return badRequest(c, "missing or invalid X-User-ID header")
	}

	if err := h.service.WithdrawBid(c.Context(), application.WithdrawBidDTO{
		BidID:  bidID,
		UserID: userID,
	}); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuctionHandler) finalizeAuction(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid auction id")
	}

	result, err := h.service.FinalizeAuction(c.Context(), application.FinalizeAuctionDTO{
		Role:      roleFromHeader(c),
		AuctionID: auctionID,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"winner_id":      result.WinnerID,
		"winning_amount": result.WinningAmount,
	})
}

func (h *AuctionHandler) confirmPayment(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid auction id")
	}

	if err := h.service.ConfirmPayment(c.Context(), application.ConfirmPaymentDTO{
		Role:      roleFromHeader(c),
		AuctionID: auctionID,
	}); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"payment_confirmed": true})
}

func (h *AuctionHandler) processDeadline(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid auction id")
	}

	result, err := h.service.ProcessPaymentDeadline(c.Context(), application.ProcessDeadlineDTO{
		Role:      roleFromHeader(c),
		AuctionID: auctionID,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"payment_confirmed":  result.PaymentConfirmed,
		"new_winner_id":      result.NewWinnerID,
		"all_bids_exhausted": result.AllBidsExhausted,
	})
}

func (h *AuctionHandler) getAuction(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid auction id")
	}
	state, err := h.service.GetAuctionState(c.Context(), auctionID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(state)
}

func (h *AuctionHandler) getAuctionBids(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid auction id")
	}
	var requestingUser *uuid.UUID
	if raw := c.Get("X-User-ID"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid X-User-ID header")
		}
		requestingUser = &id
	}

	bids, err := h.service.GetAuctionBids(c.Context(), auctionID, requestingUser)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"bids": bids})
}

func (h *AuctionHandler) listActiveAuctions(c *fiber.Ctx) error {
	auctions, err := h.service.ListActiveAuctions(c.Context())
	if err != nil {
		return domainError(c, err)
	}

	type item struct {
		AuctionID uuid.UUID `json:"auction_id"`
		Title     string    `json:"title"`
		Type      string    `json:"type"`
		EndTime   time.Time `json:"end_time"`
		Category  string    `json:"category,omitempty"`
	}
	items := make([]item, 0, len(auctions))
	for _, a := range auctions {
		items = append(items, item{
			AuctionID: a.ID,
			Title:     a.Title,
			Type:      string(a.Type),
			EndTime:   a.EndTime,
			Category:  a.Category,
		})
	}
	return c.JSON(fiber.Map{"auctions": items})
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func (h *AuctionHandler) depositFunds(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid participant id")
	}
	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.service.DepositFunds(c.Context(), application.DepositFundsDTO{
		UserID: userID,
		Amount: req.Amount,
	}); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// roleFromHeader trusts X-Role, authentication itself lives in front of this service
func roleFromHeader(c *fiber.Ctx) domain.Role {
	if c.Get("X-Role") == string(domain.RoleAdmin) {
		return domain.RoleAdmin
	}
	return domain.RoleParticipant
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// domainError maps the sentinel errors to HTTP statuses
func domainError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrAuctionNotFound),
		errors.Is(err, domain.ErrBidNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientPermissions):
		status = fiber.StatusForbidden
	case errors.Is(err, domain.ErrAuctionNotActive),
		errors.Is(err, domain.ErrAuctionNotEnded),
		errors.Is(err, domain.ErrAlreadyFinalized),
		errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrExceedsMaxBidAmount),
		errors.Is(err, domain.ErrExceedsBalanceLimit),
		errors.Is(err, domain.ErrNotBidOwner),
		errors.Is(err, domain.ErrBidAlreadyWithdrawn),
		errors.Is(err, domain.ErrNoProvisionalWinner),
		errors.Is(err, domain.ErrDeadlineNotPassed),
		errors.Is(err, domain.ErrDeadlineAlreadyPassed),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidIncrement),
		errors.Is(err, application.ErrInvalidDepositAmount):
		status = fiber.StatusUnprocessableEntity
	default:
		log.Error("unexpected error", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
