package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/peterldowns/testy/check"
)

func finalizedWithWinner(category string, winnerID uuid.UUID) *Auction {
	a := newTestAuction(StateFinalized)
	a.Category = category
	a.WinnerID = &winnerID
	a.IsPaymentConfirmed = true
	return a
}

func finalizedWithPendingProvisional(category string, provisionalID uuid.UUID) *Auction {
	a := newTestAuction(StateFinalized)
	a.Category = category
	a.ProvisionalWinnerID = &provisionalID
	return a
}

func TestNoExclusionsWithoutCategory(t *testing.T) {
	current := newTestAuction(StateEnded)
	prior := finalizedWithWinner("electronics", uuid.New())

	excluded := NoRepeatWinnerPolicy{}.ExcludedUsers(current, []*Auction{prior})
	check.Equal(t, 0, len(excluded))
}

func TestExcludesConfirmedAndProvisionalWinners(t *testing.T) {
	current := newTestAuction(StateEnded)
	current.Category = "electronics"
	confirmed, provisional := uuid.New(), uuid.New()

	excluded := NoRepeatWinnerPolicy{}.ExcludedUsers(current, []*Auction{
		finalizedWithWinner("electronics", confirmed),
		finalizedWithPendingProvisional("electronics", provisional),
	})

	check.Equal(t, 2, len(excluded))
	_, ok := excluded[confirmed]
	check.True(t, ok)
	_, ok = excluded[provisional]
	check.True(t, ok)
}

func TestConfirmedProvisionalCountsThroughWinnerField(t *testing.T) {
	// after confirmation WinnerID carries the exclusion, the provisional id
	// no longer counts separately
	current := newTestAuction(StateEnded)
	current.Category = "electronics"
	winner := uuid.New()
	prior := finalizedWithWinner("electronics", winner)
	prior.ProvisionalWinnerID = &winner

	excluded := NoRepeatWinnerPolicy{}.ExcludedUsers(current, []*Auction{prior})
	check.Equal(t, 1, len(excluded))
}

func TestOwnAuctionIsIgnored(t *testing.T) {
	current := newTestAuction(StateFinalized)
	current.Category = "electronics"
	self := uuid.New()
	current.ProvisionalWinnerID = &self

	excluded := NoRepeatWinnerPolicy{}.ExcludedUsers(current, []*Auction{current})
	check.Equal(t, 0, len(excluded))
}
