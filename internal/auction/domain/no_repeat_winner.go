package domain

import "github.com/google/uuid"

// NoRepeatWinnerPolicy computes the per-auction exclusion set that keeps a
// user from winning twice in the same category during one cycle.
type NoRepeatWinnerPolicy struct{}

// ExcludedUsers scans the already-finalized auctions sharing the current
// auction's category within the cycle window. For each of them it excludes
// the confirmed winner, and separately any still-pending provisional winner:
// that user has an outstanding claim in the category even though their
// payment is not confirmed yet.
func (NoRepeatWinnerPolicy) ExcludedUsers(currentAuction *Auction, finalizedInCategory []*Auction) map[uuid.UUID]struct{} {
	excluded := make(map[uuid.UUID]struct{})
	if currentAuction.Category == "" {
		return excluded
	}

	for _, auction := range finalizedInCategory {
		if auction.ID == currentAuction.ID {
			continue
		}
		if auction.WinnerID != nil {
			excluded[*auction.WinnerID] = struct{}{}
		}
		if auction.ProvisionalWinnerID != nil && !auction.IsPaymentConfirmed {
			excluded[*auction.ProvisionalWinnerID] = struct{}{}
		}
	}
	return excluded
}
