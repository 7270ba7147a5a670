package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

// User is the participant record as the engine sees it: identity plus the
// ban state written by the payment-failure penalty.
type User struct {
	ID          uuid.UUID
	Email       string
	BannedUntil *time.Time
}

// IsBanned is true while the current time is before the ban expiration
func (u *User) IsBanned(currentTime time.Time) bool {
	return u.BannedUntil != nil && currentTime.Before(*u.BannedUntil)
}

func (u *User) Ban(until time.Time) {
	u.BannedUntil = &until
}

func (u *User) Unban() {
	u.BannedUntil = nil
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, user *User) error
}
