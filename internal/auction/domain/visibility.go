package domain

import "github.com/google/uuid"

// VisibilityService holds the read-time filters deciding what bid data a
// query may expose. Open auctions show amounts while running, blind auctions
// only after they end.
type VisibilityService struct{}

func (VisibilityService) AreBidAmountsVisible(auction *Auction) bool {
	switch auction.Type {
	case TypeOpen:
		return auction.State == StateActive ||
			auction.State == StateEnded ||
			auction.State == StateFinalized
	case TypeBlind:
		return auction.State == StateEnded ||
			auction.State == StateFinalized
	default:
		return false
	}
}

func (v VisibilityService) ShouldShowHighestBid(auction *Auction) bool {
	return auction.Type == TypeOpen && v.AreBidAmountsVisible(auction)
}

func (VisibilityService) ShouldShowMinPrice(auction *Auction) bool {
	if auction.Type == TypeOpen {
		return true
	}
	return auction.ShowMinPrice
}

// CanViewBidDetails lets a bidder always see their own bid, everyone else
// falls under the amount-visibility rule.
func (v VisibilityService) CanViewBidDetails(auction *Auction, requestingUserID *uuid.UUID, bidOwnerID uuid.UUID) bool {
	if requestingUserID != nil && *requestingUserID == bidOwnerID {
		return true
	}
	return v.AreBidAmountsVisible(auction)
}

func (VisibilityService) ShouldShowBidCount(auction *Auction) bool {
	return auction.State != StatePending
}
