package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AuctionRepository implements domain.AuctionRepository on pgx
type AuctionRepository struct {
	pool *pgxpool.Pool
}

func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

const auctionColumns = `
        id, title, description, start_time, end_time, type, minimum_increment,
        min_price, soft_close_window, show_min_price, tie_breaking_policy, category,
        state, winner_id, winning_bid_amount, provisional_winner_id,
        provisional_winning_amount, payment_deadline, is_payment_confirmed,
        created_at, updated_at`

// Create inserts a new auction row.
func (r *AuctionRepository) Create(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, title, description, start_time, end_time, type,
            minimum_increment, min_price, soft_close_window, show_min_price,
            tie_breaking_policy, category, state, winner_id, winning_bid_amount,
            provisional_winner_id, provisional_winning_amount, payment_deadline,
            is_payment_confirmed)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
    `
	_, err := r.pool.Exec(ctx, query, auctionArgs(auction)...)
	return err
}

// Update persists the full aggregate state, settlement fields included.
func (r *AuctionRepository) Update(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, title, description, start_time, end_time, type,
            minimum_increment, min_price, soft_close_window, show_min_price,
            tie_breaking_policy, category, state, winner_id, winning_bid_amount,
            provisional_winner_id, provisional_winning_amount, payment_deadline,
            is_payment_confirmed)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
        ON CONFLICT (id) DO UPDATE
        SET
            end_time = EXCLUDED.end_time,
            state = EXCLUDED.state,
            winner_id = EXCLUDED.winner_id,
            winning_bid_amount = EXCLUDED.winning_bid_amount,
            provisional_winner_id = EXCLUDED.provisional_winner_id,
            provisional_winning_amount = EXCLUDED.provisional_winning_amount,
            payment_deadline = EXCLUDED.payment_deadline,
            is_payment_confirmed = EXCLUDED.is_payment_confirmed,
            updated_at = NOW();
    `
	_, err := r.pool.Exec(ctx, query, auctionArgs(auction)...)
	return err
}

func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT` + auctionColumns + `
        FROM auctions
        WHERE id = $1
    `
	auction, err := scanAuction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	return auction, nil
}

func (r *AuctionRepository) GetByState(ctx context.Context, state domain.AuctionState) ([]*domain.Auction, error) {
	query := `SELECT` + auctionColumns + `
        FROM auctions
        WHERE state = $1
    `
	rows, err := r.pool.Query(ctx, query, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAuctions(rows)
}

func (r *AuctionRepository) GetFinalizedByCategoryAndPeriod(ctx context.Context, category string, from, to time.Time) ([]*domain.Auction, error) {
	query := `SELECT` + auctionColumns + `
        FROM auctions
        WHERE state = $1 AND category = $2 AND end_time >= $3 AND end_time <= $4
    `
	rows, err := r.pool.Query(ctx, query, domain.StateFinalized, category, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAuctions(rows)
}

func auctionArgs(auction *domain.Auction) []any {
	var minIncrement, winningAmount, provisionalAmount decimal.NullDecimal
	if auction.MinimumIncrement != nil {
		minIncrement = decimal.NullDecimal{Decimal: *auction.MinimumIncrement, Valid: true}
	}
	if auction.WinningBidAmount != nil {
		winningAmount = decimal.NullDecimal{Decimal: *auction.WinningBidAmount, Valid: true}
	}
	if auction.ProvisionalWinningAmount != nil {
		provisionalAmount = decimal.NullDecimal{Decimal: *auction.ProvisionalWinningAmount, Valid: true}
	}
	var softClose *int64
	if auction.SoftCloseWindow != nil {
		ns := auction.SoftCloseWindow.Nanoseconds()
		softClose = &ns
	}
	return []any{
		auction.ID,
		auction.Title,
		auction.Description,
		auction.StartTime,
		auction.EndTime,
		auction.Type,
		minIncrement,
		auction.MinPrice,
		softClose,
		auction.ShowMinPrice,
		auction.TieBreakingPolicy,
		auction.Category,
		auction.State,
		auction.WinnerID,
		winningAmount,
		auction.ProvisionalWinnerID,
		provisionalAmount,
		auction.PaymentDeadline,
		auction.IsPaymentConfirmed,
	}
}

func scanAuction(row pgx.Row) (*domain.Auction, error) {
	auction := &domain.Auction{}
	var (
		startTime         *time.Time
		minIncrement      decimal.NullDecimal
		softClose         *int64
		winnerID          *uuid.UUID
		winningAmount     decimal.NullDecimal
		provisionalID     *uuid.UUID
		provisionalAmount decimal.NullDecimal
		paymentDeadline   *time.Time
	)
	err := row.Scan(
		&auction.ID,
		&auction.Title,
		&auction.Description,
		&startTime,
		&auction.EndTime,
		&auction.Type,
		&minIncrement,
		&auction.MinPrice,
		&softClose,
		&auction.ShowMinPrice,
		&auction.TieBreakingPolicy,
		&auction.Category,
		&auction.State,
		&winnerID,
		&winningAmount,
		&provisionalID,
		&provisionalAmount,
		&paymentDeadline,
		&auction.IsPaymentConfirmed,
		&auction.CreatedAt,
		&auction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	auction.StartTime = startTime
	auction.WinnerID = winnerID
	auction.ProvisionalWinnerID = provisionalID
	auction.PaymentDeadline = paymentDeadline
	if minIncrement.Valid {
		auction.MinimumIncrement = &minIncrement.Decimal
	}
	if winningAmount.Valid {
		auction.WinningBidAmount = &winningAmount.Decimal
	}
	if provisionalAmount.Valid {
		auction.ProvisionalWinningAmount = &provisionalAmount.Decimal
	}
	if softClose != nil {
		window := time.Duration(*softClose)
		auction.SoftCloseWindow = &window
	}
	return auction, nil
}

func collectAuctions(rows pgx.Rows) ([]*domain.Auction, error) {
	var auctions []*domain.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return auctions, nil
}
