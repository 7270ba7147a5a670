package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BalanceRepository reads the participant ledger. A missing row means a zero
// balance, the custody side of the ledger is not this service's problem.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

func (r *BalanceRepository) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT amount FROM balances WHERE user_id = $1`

	var amount decimal.Decimal
	err := r.pool.QueryRow(ctx, query, userID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return amount, nil
}

func (r *BalanceRepository) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	query := `
        INSERT INTO balances (user_id, amount)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE
        SET amount = balances.amount + EXCLUDED.amount,
            updated_at = NOW();
    `
	_, err := r.pool.Exec(ctx, query, userID, amount)
	return err
}
