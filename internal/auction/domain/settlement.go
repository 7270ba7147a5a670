package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettlementService performs one step of the settlement cascade: confirm the
// provisional winner's payment, or reject them and compute the candidate set
// for promotion. It never loops, re-invocation is driven externally by the
// next payment deadline expiring.
type SettlementService struct{}

// SettlementOutcome reports one cascade step as data. A rejection with an
// empty candidate list is a valid terminal outcome, not an error.
type SettlementOutcome struct {
	IsConfirmed              bool
	ConfirmedWinnerID        *uuid.UUID
	RejectedUserID           *uuid.UUID
	EligibleBidsForPromotion []*Bid
}

// ProcessPaymentDeadline settles one provisional winner. The auction must
// have a provisional winner, callers check that before invoking.
//
// If the balance covers the winning amount the payment is confirmed and the
// winner becomes permanent. Otherwise the provisional winner is rejected and
// the remaining active bids are filtered for promotion: the rejected user,
// the no-repeat exclusion set, banned users and anything below the min price
// all drop out.
func (SettlementService) ProcessPaymentDeadline(
	auction *Auction,
	activeBids []*Bid,
	provisionalWinnerBalance decimal.Decimal,
	excludedUsers map[uuid.UUID]struct{},
	isUserBanned func(uuid.UUID) bool,
) SettlementOutcome {
	if !auction.HasProvisionalWinner() {
		panic("settlement: cannot process payment deadline without a provisional winner")
	}

	if provisionalWinnerBalance.GreaterThanOrEqual(*auction.ProvisionalWinningAmount) {
		auction.ConfirmPayment()
		return SettlementOutcome{
			IsConfirmed:       true,
			ConfirmedWinnerID: auction.WinnerID,
		}
	}

	rejectedUserID := *auction.ProvisionalWinnerID
	auction.RejectProvisionalWinner()

	candidates := eligibleBidsForPromotion(activeBids, excludedUsers, rejectedUserID, isUserBanned, auction.MinPrice)
	log.Info("Settlement step rejected provisional winner",
		zap.String("auctionID", auction.ID.String()),
		zap.String("rejectedUserID", rejectedUserID.String()),
		zap.Int("promotionCandidates", len(candidates)),
	)

	return SettlementOutcome{
		RejectedUserID:           &rejectedUserID,
		EligibleBidsForPromotion: candidates,
	}
}

func eligibleBidsForPromotion(
	activeBids []*Bid,
	excludedUsers map[uuid.UUID]struct{},
	rejectedUserID uuid.UUID,
	isUserBanned func(uuid.UUID) bool,
	minPrice decimal.Decimal,
) []*Bid {
	var eligible []*Bid
	for _, bid := range activeBids {
		if bid.UserID == rejectedUserID {
			continue
		}
		if _, excluded := excludedUsers[bid.UserID]; excluded {
			continue
		}
		if isUserBanned(bid.UserID) {
			continue
		}
		if bid.Amount.LessThan(minPrice) {
			continue
		}
		eligible = append(eligible, bid)
	}
	return eligible
}
