package application

import (
	"errors"
	"testing"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

func validCreateRequest() CreateAuctionDTO {
	increment := decimal.NewFromInt(10)
	return CreateAuctionDTO{
		Role:              domain.RoleAdmin,
		Title:             "vintage camera",
		EndTime:           testStart.Add(time.Hour),
		Type:              domain.TypeOpen,
		MinimumIncrement:  &increment,
		MinPrice:          decimal.NewFromInt(100),
		TieBreakingPolicy: domain.TieBreakEarliest,
	}
}

func TestCreateAuctionRequiresAdmin(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	req.Role = domain.RoleParticipant

	_, err := NewCreateAuctionUseCase(f.auctionRepo, f.clk).Execute(f.ctx, req)
	check.True(t, errors.Is(err, domain.ErrInsufficientPermissions))
}

func TestCreateAuctionValidation(t *testing.T) {
	f := newFixture()
	uc := NewCreateAuctionUseCase(f.auctionRepo, f.clk)

	t.Run("blank title", func(t *testing.T) {
		req := validCreateRequest()
		req.Title = "   "
		_, err := uc.Execute(f.ctx, req)
		check.True(t, errors.Is(err, domain.ErrInvalidTitle))
	})

	t.Run("start after end", func(t *testing.T) {
		req := validCreateRequest()
		start := req.EndTime.Add(time.Minute)
		req.StartTime = &start
		_, err := uc.Execute(f.ctx, req)
		check.True(t, errors.Is(err, domain.ErrInvalidTimeRange))
	})

	t.Run("end already past without start", func(t *testing.T) {
		req := validCreateRequest()
		req.EndTime = testStart.Add(-time.Minute)
		_, err := uc.Execute(f.ctx, req)
		check.True(t, errors.Is(err, domain.ErrInvalidTimeRange))
	})

	t.Run("open auction without increment", func(t *testing.T) {
		req := validCreateRequest()
		req.MinimumIncrement = nil
		_, err := uc.Execute(f.ctx, req)
		check.True(t, errors.Is(err, domain.ErrInvalidIncrement))
	})

	t.Run("blind auction needs no increment", func(t *testing.T) {
		req := validCreateRequest()
		req.Type = domain.TypeBlind
		req.MinimumIncrement = nil
		_, err := uc.Execute(f.ctx, req)
		check.NoError(t, err)
	})
}

func TestCreateAuctionActivatesImmediatelyWithoutStartTime(t *testing.T) {
	f := newFixture()
	auction, err := NewCreateAuctionUseCase(f.auctionRepo, f.clk).Execute(f.ctx, validCreateRequest())
	assert.NoError(t, err)
	check.Equal(t, domain.StateActive, auction.State)

	stored, err := f.auctionRepo.GetByID(f.ctx, auction.ID)
	assert.NoError(t, err)
	check.Equal(t, domain.StateActive, stored.State)
}

func TestCreateAuctionWithFutureStartStaysPending(t *testing.T) {
	f := newFixture()
	req := validCreateRequest()
	start := testStart.Add(10 * time.Minute)
	req.StartTime = &start

	auction, err := NewCreateAuctionUseCase(f.auctionRepo, f.clk).Execute(f.ctx, req)
	assert.NoError(t, err)
	check.Equal(t, domain.StatePending, auction.State)
}
