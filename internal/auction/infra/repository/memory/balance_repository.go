package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceRepository keeps participant balances in memory. Unknown users
// simply have a zero balance, the ledger is external anyway.
type BalanceRepository struct {
	mu       sync.RWMutex
	balances map[uuid.UUID]decimal.Decimal
}

func NewBalanceRepository() *BalanceRepository {
	return &BalanceRepository{balances: make(map[uuid.UUID]decimal.Decimal)}
}

func (r *BalanceRepository) GetBalance(_ context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[userID], nil
}

func (r *BalanceRepository) Deposit(_ context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[userID] = r.balances[userID].Add(amount)
	return nil
}

// SetBalance overwrites a balance directly, test setup helper
func (r *BalanceRepository) SetBalance(userID uuid.UUID, amount decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[userID] = amount
}
