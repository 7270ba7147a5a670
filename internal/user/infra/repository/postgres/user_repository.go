package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/user/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository for PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, COALESCE(email, ''), banned_until FROM users WHERE id = $1`

	user := &domain.User{}
	var bannedUntil *time.Time
	err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &bannedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.BannedUntil = bannedUntil
	return user, nil
}

// Update only touches the ban field, the rest of the user record belongs to
// the (external) identity layer.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
        UPDATE users
        SET banned_until = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.pool.Exec(ctx, query, user.ID, user.BannedUntil)
	return err
}
