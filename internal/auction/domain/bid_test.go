package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func TestWithdrawIsOneWay(t *testing.T) {
	bid := NewBid(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(150), baseTime)
	check.False(t, bid.IsWithdrawn)

	bid.Withdraw()
	check.True(t, bid.IsWithdrawn)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second withdraw")
		}
	}()
	bid.Withdraw()
}
