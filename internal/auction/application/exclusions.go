package application

import (
	"context"
	"fmt"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/google/uuid"
)

// noRepeatExclusions resolves the exclusion set for an auction: the active
// cycle bounds the lookback window and the policy folds the finalized
// auctions of the category into user ids. No category or no active cycle
// means no exclusions.
func noRepeatExclusions(
	ctx context.Context,
	auction *domain.Auction,
	cycleRepo domain.CycleRepository,
	auctionRepo domain.AuctionRepository,
	policy domain.NoRepeatWinnerPolicy,
	now time.Time,
) (map[uuid.UUID]struct{}, error) {
	if auction.Category == "" {
		return map[uuid.UUID]struct{}{}, nil
	}

	cycle, err := cycleRepo.GetActiveCycle(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("resolve active cycle: %w", err)
	}
	if cycle == nil {
		return map[uuid.UUID]struct{}{}, nil
	}

	finalized, err := auctionRepo.GetFinalizedByCategoryAndPeriod(ctx, auction.Category, cycle.StartDate, cycle.EndDate)
	if err != nil {
		return nil, fmt.Errorf("load finalized auctions in category %q: %w", auction.Category, err)
	}
	return policy.ExcludedUsers(auction, finalized), nil
}
