package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuctionCycle scopes the no-repeat-winner lookback window. It has no other
// role in the engine.
type AuctionCycle struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// ContainsDate is an inclusive date-range membership check
func (c *AuctionCycle) ContainsDate(date time.Time) bool {
	return !date.Before(c.StartDate) && !date.After(c.EndDate)
}
