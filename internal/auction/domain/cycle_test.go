package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/check"
)

func TestCycleContainsDateIsInclusive(t *testing.T) {
	cycle := &AuctionCycle{
		ID:        uuid.New(),
		Name:      "june",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC),
		IsActive:  true,
	}

	check.True(t, cycle.ContainsDate(cycle.StartDate))
	check.True(t, cycle.ContainsDate(cycle.EndDate))
	check.True(t, cycle.ContainsDate(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	check.False(t, cycle.ContainsDate(cycle.StartDate.Add(-time.Second)))
	check.False(t, cycle.ContainsDate(cycle.EndDate.Add(time.Second)))
}
