package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestBanExpirationUsesCalendarDays(t *testing.T) {
	policy := BanPolicy{}
	got := policy.CalculateBanExpiration(now, 7)
	check.Equal(t, time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC), got)
}

func TestBanForPaymentFailureStampsTheUser(t *testing.T) {
	policy := BanPolicy{}
	u := &User{ID: uuid.New()}

	policy.BanForPaymentFailure(u, now, 7)

	assert.True(t, u.BannedUntil != nil)
	check.Equal(t, now.AddDate(0, 0, 7), *u.BannedUntil)
	check.True(t, u.IsBanned(now))
}

func TestNonPositiveBanDurationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	BanPolicy{}.CalculateBanExpiration(now, 0)
}
