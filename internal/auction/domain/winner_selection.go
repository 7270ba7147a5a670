package domain

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// WinnerSelectionService filters the eligible bids of an auction and applies
// its tie-breaking policy. The randomness source is injected so tests can
// seed it and assert membership in the tie set.
type WinnerSelectionService struct {
	rng *rand.Rand
}

func NewWinnerSelectionService(rng *rand.Rand) *WinnerSelectionService {
	return &WinnerSelectionService{rng: rng}
}

// SelectWinner returns the winning bid among the active (non-withdrawn) bids,
// or nil if nothing is eligible. A bid is eligible when its amount clears the
// auction min price and its user is not in the exclusion set.
func (s *WinnerSelectionService) SelectWinner(auction *Auction, activeBids []*Bid, excludedUserIDs map[uuid.UUID]struct{}) *Bid {
	if len(activeBids) == 0 {
		return nil
	}

	var eligible []*Bid
	for _, b := range activeBids {
		if b.Amount.LessThan(auction.MinPrice) {
			continue
		}
		if _, excluded := excludedUserIDs[b.UserID]; excluded {
			continue
		}
		eligible = append(eligible, b)
	}
	if len(eligible) == 0 {
		return nil
	}

	maxAmount := eligible[0].Amount
	for _, b := range eligible[1:] {
		if b.Amount.GreaterThan(maxAmount) {
			maxAmount = b.Amount
		}
	}

	var topBids []*Bid
	for _, b := range eligible {
		if b.Amount.Equal(maxAmount) {
			topBids = append(topBids, b)
		}
	}

	if len(topBids) == 1 {
		return topBids[0]
	}
	return s.applyTieBreaking(auction.TieBreakingPolicy, topBids)
}

func (s *WinnerSelectionService) applyTieBreaking(policy TieBreakingPolicy, tiedBids []*Bid) *Bid {
	switch policy {
	case TieBreakEarliest:
		// PlacedAt is a precise ordering key, full nanosecond resolution
		earliest := tiedBids[0]
		for _, b := range tiedBids[1:] {
			if b.PlacedAt.Before(earliest.PlacedAt) {
				earliest = b
			}
		}
		return earliest
	case TieBreakRandomAmongEquals:
		return tiedBids[s.rng.IntN(len(tiedBids))]
	default:
		panic("winner selection: unknown tie-breaking policy " + string(policy))
	}
}
