package postgres

import (
	"context"
	"errors"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository implements domain.BidRepository on pgx
type BidRepository struct {
	pool *pgxpool.Pool
}

func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

func (r *BidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (id, auction_id, user_id, amount, placed_at, is_withdrawn)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.pool.Exec(ctx, query,
		bid.ID,
		bid.AuctionID,
		bid.UserID,
		bid.Amount,
		bid.PlacedAt,
		bid.IsWithdrawn,
	)
	return err
}

// Update only ever flips the withdrawal flag, everything else is immutable
func (r *BidRepository) Update(ctx context.Context, bid *domain.Bid) error {
	query := `
        UPDATE bids
        SET is_withdrawn = $2
        WHERE id = $1
    `
	_, err := r.pool.Exec(ctx, query, bid.ID, bid.IsWithdrawn)
	return err
}

func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, placed_at, is_withdrawn
        FROM bids
        WHERE id = $1
    `
	bid := &domain.Bid{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&bid.ID,
		&bid.AuctionID,
		&bid.UserID,
		&bid.Amount,
		&bid.PlacedAt,
		&bid.IsWithdrawn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBidNotFound
		}
		return nil, err
	}
	return bid, nil
}

func (r *BidRepository) GetByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, placed_at, is_withdrawn
        FROM bids
        WHERE auction_id = $1
        ORDER BY placed_at ASC
    `
	return r.queryBids(ctx, query, auctionID)
}

func (r *BidRepository) GetActiveByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, placed_at, is_withdrawn
        FROM bids
        WHERE auction_id = $1 AND is_withdrawn = FALSE
        ORDER BY placed_at ASC
    `
	return r.queryBids(ctx, query, auctionID)
}

// GetHighestActiveByAuction returns nil when there are no active bids yet
func (r *BidRepository) GetHighestActiveByAuction(ctx context.Context, auctionID uuid.UUID) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, placed_at, is_withdrawn
        FROM bids
        WHERE auction_id = $1 AND is_withdrawn = FALSE
        ORDER BY amount DESC, placed_at ASC
        LIMIT 1
    `
	bid := &domain.Bid{}
	err := r.pool.QueryRow(ctx, query, auctionID).Scan(
		&bid.ID,
		&bid.AuctionID,
		&bid.UserID,
		&bid.Amount,
		&bid.PlacedAt,
		&bid.IsWithdrawn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bid, nil
}

func (r *BidRepository) GetLatestUserBidForAuction(ctx context.Context, auctionID, userID uuid.UUID) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, placed_at, is_withdrawn
        FROM bids
        WHERE auction_id = $1 AND user_id = $2
        ORDER BY placed_at DESC
        LIMIT 1
    `
	bid := &domain.Bid{}
	err := r.pool.QueryRow(ctx, query, auctionID, userID).Scan(
		&bid.ID,
		&bid.AuctionID,
		&bid.UserID,
		&bid.Amount,
		&bid.PlacedAt,
		&bid.IsWithdrawn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bid, nil
}

func (r *BidRepository) queryBids(ctx context.Context, query string, args ...any) ([]*domain.Bid, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		bid := &domain.Bid{}
		err := rows.Scan(
			&bid.ID,
			&bid.AuctionID,
			&bid.UserID,
			&bid.Amount,
			&bid.PlacedAt,
			&bid.IsWithdrawn,
		)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}
