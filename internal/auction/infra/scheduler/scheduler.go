package scheduler

import (
	"context"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/MarharytaFilipovych/no-2/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Scheduler drives the time-based lifecycle transitions: pending auctions
// whose start time has been reached become active, active auctions whose end
// time has passed become ended. Finalization stays an explicit operator call.
type Scheduler struct {
	auctionRepo domain.AuctionRepository
	clk         clock.Clock
	interval    time.Duration
	onChange    func(ctx context.Context, auctionID string)
}

// NewScheduler creates a scheduler. onChange is invoked after each persisted
// transition (used to push websocket updates) and may be nil.
func NewScheduler(auctionRepo domain.AuctionRepository, clk clock.Clock, interval time.Duration, onChange func(ctx context.Context, auctionID string)) *Scheduler {
	return &Scheduler{
		auctionRepo: auctionRepo,
		clk:         clk,
		interval:    interval,
		onChange:    onChange,
	}
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info("lifecycle scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			log.Info("lifecycle scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs a single sweep. Exposed so a tick can be forced in tests.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.clk.Now()
	s.activateDueAuctions(ctx, now)
	s.endDueAuctions(ctx, now)
}

func (s *Scheduler) activateDueAuctions(ctx context.Context, now time.Time) {
	pending, err := s.auctionRepo.GetByState(ctx, domain.StatePending)
	if err != nil {
		log.Error("scheduler: listing pending auctions failed", zap.Error(err))
		return
	}
	for _, auction := range pending {
		if !auction.CanTransitionToActive(now) {
			continue
		}
		auction.TransitionToActive()
		if err := s.auctionRepo.Update(ctx, auction); err != nil {
			log.Error("scheduler: activating auction failed",
				zap.String("auction_id", auction.ID.String()), zap.Error(err))
			continue
		}
		s.notify(ctx, auction.ID.String())
	}
}

func (s *Scheduler) endDueAuctions(ctx context.Context, now time.Time) {
	active, err := s.auctionRepo.GetByState(ctx, domain.StateActive)
	if err != nil {
		log.Error("scheduler: listing active auctions failed", zap.Error(err))
		return
	}
	for _, auction := range active {
		if !auction.CanTransitionToEnded(now) {
			continue
		}
		auction.TransitionToEnded()
		if err := s.auctionRepo.Update(ctx, auction); err != nil {
			log.Error("scheduler: ending auction failed",
				zap.String("auction_id", auction.ID.String()), zap.Error(err))
			continue
		}
		s.notify(ctx, auction.ID.String())
	}
}

func (s *Scheduler) notify(ctx context.Context, auctionID string) {
	if s.onChange != nil {
		s.onChange(ctx, auctionID)
	}
}
