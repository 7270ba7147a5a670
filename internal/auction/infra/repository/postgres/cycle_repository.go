package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CycleRepository struct {
	pool *pgxpool.Pool
}

func NewCycleRepository(pool *pgxpool.Pool) *CycleRepository {
	return &CycleRepository{pool: pool}
}

func (r *CycleRepository) GetActiveCycle(ctx context.Context, date time.Time) (*domain.AuctionCycle, error) {
	query := `
        SELECT id, name, start_date, end_date, is_active
        FROM auction_cycles
        WHERE is_active = TRUE AND start_date <= $1 AND end_date >= $1
        LIMIT 1
    `
	return r.queryCycle(ctx, query, date)
}

func (r *CycleRepository) GetCycleForDate(ctx context.Context, date time.Time) (*domain.AuctionCycle, error) {
	query := `
        SELECT id, name, start_date, end_date, is_active
        FROM auction_cycles
        WHERE start_date <= $1 AND end_date >= $1
        LIMIT 1
    `
	return r.queryCycle(ctx, query, date)
}

func (r *CycleRepository) Create(ctx context.Context, cycle *domain.AuctionCycle) error {
	query := `
        INSERT INTO auction_cycles (id, name, start_date, end_date, is_active)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.pool.Exec(ctx, query, cycle.ID, cycle.Name, cycle.StartDate, cycle.EndDate, cycle.IsActive)
	return err
}

func (r *CycleRepository) Update(ctx context.Context, cycle *domain.AuctionCycle) error {
	query := `
        UPDATE auction_cycles
        SET name = $2, start_date = $3, end_date = $4, is_active = $5
        WHERE id = $1
    `
	_, err := r.pool.Exec(ctx, query, cycle.ID, cycle.Name, cycle.StartDate, cycle.EndDate, cycle.IsActive)
	return err
}

func (r *CycleRepository) queryCycle(ctx context.Context, query string, date time.Time) (*domain.AuctionCycle, error) {
	cycle := &domain.AuctionCycle{}
	err := r.pool.QueryRow(ctx, query, date).Scan(
		&cycle.ID,
		&cycle.Name,
		&cycle.StartDate,
		&cycle.EndDate,
		&cycle.IsActive,
	)
	if err != nil {
		// no cycle configured is not an error for the engine
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return cycle, nil
}
