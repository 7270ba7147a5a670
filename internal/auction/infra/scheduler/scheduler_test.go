package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/auction/infra/repository/memory"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

var tickStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedAuction(t *testing.T, repo *memory.AuctionRepository, state domain.AuctionState, start *time.Time, end time.Time) *domain.Auction {
	t.Helper()
	a := &domain.Auction{
		ID:                uuid.New(),
		Title:             "vintage camera",
		StartTime:         start,
		EndTime:           end,
		Type:              domain.TypeOpen,
		MinPrice:          decimal.NewFromInt(100),
		TieBreakingPolicy: domain.TieBreakEarliest,
		State:             state,
	}
	assert.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestTickActivatesDuePendingAuctions(t *testing.T) {
	repo := memory.NewAuctionRepository()
	clk := clock.NewFake(tickStart)
	due := seedAuction(t, repo, domain.StatePending, &tickStart, tickStart.Add(time.Hour))
	futureStart := tickStart.Add(time.Hour)
	notDue := seedAuction(t, repo, domain.StatePending, &futureStart, tickStart.Add(2*time.Hour))

	var notified []string
	s := NewScheduler(repo, clk, time.Second, func(_ context.Context, id string) {
		notified = append(notified, id)
	})
	s.Tick(context.Background())

	stored, err := repo.GetByID(context.Background(), due.ID)
	assert.NoError(t, err)
	check.Equal(t, domain.StateActive, stored.State)

	stored, err = repo.GetByID(context.Background(), notDue.ID)
	assert.NoError(t, err)
	check.Equal(t, domain.StatePending, stored.State)

	check.Equal(t, []string{due.ID.String()}, notified)
}

func TestTickEndsDueActiveAuctions(t *testing.T) {
	repo := memory.NewAuctionRepository()
	clk := clock.NewFake(tickStart)
	overdue := seedAuction(t, repo, domain.StateActive, nil, tickStart.Add(-time.Minute))
	running := seedAuction(t, repo, domain.StateActive, nil, tickStart.Add(time.Hour))

	s := NewScheduler(repo, clk, time.Second, nil)
	s.Tick(context.Background())

	stored, err := repo.GetByID(context.Background(), overdue.ID)
	assert.NoError(t, err)
	check.Equal(t, domain.StateEnded, stored.State)

	stored, err = repo.GetByID(context.Background(), running.ID)
	assert.NoError(t, err)
	check.Equal(t, domain.StateActive, stored.State)
}

func TestTickNeverFinalizes(t *testing.T) {
	repo := memory.NewAuctionRepository()
	clk := clock.NewFake(tickStart)
	ended := seedAuction(t, repo, domain.StateEnded, nil, tickStart.Add(-time.Hour))

	s := NewScheduler(repo, clk, time.Second, nil)
	s.Tick(context.Background())

	stored, err := repo.GetByID(context.Background(), ended.ID)
	assert.NoError(t, err)
	check.Equal(t, domain.StateEnded, stored.State)
}

func TestActivateThenEndInOneTick(t *testing.T) {
	// a pending auction whose whole window is already in the past is
	// activated and ended in the same sweep
	repo := memory.NewAuctionRepository()
	clk := clock.NewFake(tickStart)
	past := tickStart.Add(-2 * time.Hour)
	a := seedAuction(t, repo, domain.StatePending, &past, tickStart.Add(-time.Hour))

	s := NewScheduler(repo, clk, time.Second, nil)
	s.Tick(context.Background())

	stored, err := repo.GetByID(context.Background(), a.ID)
	assert.NoError(t, err)
	check.Equal(t, domain.StateEnded, stored.State)
}
