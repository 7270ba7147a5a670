package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestAuction(state AuctionState) *Auction {
	return &Auction{
		ID:                uuid.New(),
		Title:             "vintage camera",
		EndTime:           baseTime.Add(time.Hour),
		Type:              TypeOpen,
		MinPrice:          decimal.NewFromInt(100),
		TieBreakingPolicy: TieBreakEarliest,
		State:             state,
	}
}

func TestLifecyclePath(t *testing.T) {
	a := newTestAuction(StatePending)

	assert.True(t, a.CanTransitionToActive(baseTime))
	a.TransitionToActive()
	check.Equal(t, StateActive, a.State)

	check.False(t, a.CanTransitionToEnded(a.EndTime.Add(-time.Second)))
	assert.True(t, a.CanTransitionToEnded(a.EndTime))
	a.TransitionToEnded()
	check.Equal(t, StateEnded, a.State)

	assert.True(t, a.CanFinalize())
	winner := uuid.New()
	deadline := baseTime.Add(4 * time.Hour)
	a.FinalizeWithProvisionalWinner(winner, decimal.NewFromInt(200), deadline)
	check.Equal(t, StateFinalized, a.State)
	assert.True(t, a.HasProvisionalWinner())
	check.Equal(t, winner, *a.ProvisionalWinnerID)
	check.True(t, a.ProvisionalWinningAmount.Equal(decimal.NewFromInt(200)))
	check.Equal(t, deadline, *a.PaymentDeadline)
}

func TestCanTransitionToActiveRespectsStartTime(t *testing.T) {
	a := newTestAuction(StatePending)
	check.True(t, a.CanTransitionToActive(baseTime))

	start := baseTime.Add(10 * time.Minute)
	a.StartTime = &start
	check.False(t, a.CanTransitionToActive(baseTime))
	check.True(t, a.CanTransitionToActive(start))
	check.True(t, a.CanTransitionToActive(start.Add(time.Minute)))
}

func TestIllegalTransitionsPanic(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"activate from active", func() { newTestAuction(StateActive).TransitionToActive() }},
		{"activate from finalized", func() { newTestAuction(StateFinalized).TransitionToActive() }},
		{"end from pending", func() { newTestAuction(StatePending).TransitionToEnded() }},
		{"end from ended", func() { newTestAuction(StateEnded).TransitionToEnded() }},
		{"finalize from active", func() {
			newTestAuction(StateActive).FinalizeWithNoWinner()
		}},
		{"finalize with winner from pending", func() {
			newTestAuction(StatePending).FinalizeWithProvisionalWinner(uuid.New(), decimal.NewFromInt(1), baseTime)
		}},
		{"extend when not active", func() {
			newTestAuction(StateEnded).ExtendEndTime(time.Minute)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestIsActiveRequiresTimeBeforeEnd(t *testing.T) {
	a := newTestAuction(StateActive)
	check.True(t, a.IsActive(a.EndTime.Add(-time.Nanosecond)))
	check.False(t, a.IsActive(a.EndTime))
	check.False(t, newTestAuction(StatePending).IsActive(baseTime))
}

func TestConfirmPaymentPromotesProvisionalWinner(t *testing.T) {
	a := newTestAuction(StateEnded)
	winner := uuid.New()
	amount := decimal.NewFromInt(250)
	a.FinalizeWithProvisionalWinner(winner, amount, baseTime.Add(3*time.Hour))

	a.ConfirmPayment()

	assert.True(t, a.WinnerID != nil)
	check.Equal(t, winner, *a.WinnerID)
	check.True(t, a.WinningBidAmount.Equal(amount))
	check.True(t, a.IsPaymentConfirmed)
	check.True(t, a.PaymentDeadline == nil)
	check.False(t, a.HasProvisionalWinner())
}

func TestConfirmPaymentPanicsWithoutProvisionalWinner(t *testing.T) {
	a := newTestAuction(StateEnded)
	a.FinalizeWithNoWinner()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	a.ConfirmPayment()
}

func TestRejectProvisionalWinnerClearsSettlementState(t *testing.T) {
	a := newTestAuction(StateEnded)
	a.FinalizeWithProvisionalWinner(uuid.New(), decimal.NewFromInt(150), baseTime.Add(time.Hour))

	a.RejectProvisionalWinner()

	check.True(t, a.ProvisionalWinnerID == nil)
	check.True(t, a.ProvisionalWinningAmount == nil)
	check.True(t, a.PaymentDeadline == nil)
	check.False(t, a.HasProvisionalWinner())
	// still finalized, the cascade may promote someone else
	check.Equal(t, StateFinalized, a.State)
}

func TestSetProvisionalWinnerOnlyWhenFinalized(t *testing.T) {
	a := newTestAuction(StateEnded)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	a.SetProvisionalWinner(uuid.New(), decimal.NewFromInt(100), baseTime)
}

func TestIsPaymentDeadlinePassedBoundary(t *testing.T) {
	a := newTestAuction(StateEnded)
	deadline := baseTime.Add(time.Hour)
	a.FinalizeWithProvisionalWinner(uuid.New(), decimal.NewFromInt(120), deadline)

	check.False(t, a.IsPaymentDeadlinePassed(deadline.Add(-time.Second)))
	// exactly at the deadline still counts as on time
	check.False(t, a.IsPaymentDeadlinePassed(deadline))
	check.True(t, a.IsPaymentDeadlinePassed(deadline.Add(time.Nanosecond)))
}

func TestExtendEndTimeAddsExactlyTheExtension(t *testing.T) {
	a := newTestAuction(StateActive)
	original := a.EndTime

	a.ExtendEndTime(5 * time.Minute)
	check.Equal(t, original.Add(5*time.Minute), a.EndTime)

	// extensions stack, each one adds a full window
	a.ExtendEndTime(5 * time.Minute)
	check.Equal(t, original.Add(10*time.Minute), a.EndTime)
}
