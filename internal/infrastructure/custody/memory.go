package custody

import (
	"context"
	"fmt"
	"sync"

	"strongbox.dev/internal/domain/entity"
)

// MemoryBank implements the TransferService port against in-memory holdings.
// It models each party's external holdings plus the custody pool backing
// recorded balances, and stands in for a real custody provider in local runs
// and tests.
type MemoryBank struct {
	mu       sync.Mutex
	holdings map[entity.Address]map[entity.Asset]entity.Amount
	custody  map[entity.Asset]entity.Amount
}

// NewMemoryBank creates a bank with no holdings.
func NewMemoryBank() *MemoryBank {
	return &MemoryBank{
		holdings: make(map[entity.Address]map[entity.Asset]entity.Amount),
		custody:  make(map[entity.Asset]entity.Amount),
	}
}

// SetHolding fixes a party's external holding, for seeding and tests.
func (b *MemoryBank) SetHolding(party entity.Address, asset entity.Asset, amount entity.Amount) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.holdings[party] == nil {
		b.holdings[party] = make(map[entity.Asset]entity.Amount)
	}
	b.holdings[party][asset] = amount
}

// HoldingOf returns a party's external holding, zero when unknown.
func (b *MemoryBank) HoldingOf(party entity.Address, asset entity.Asset) entity.Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holdings[party][asset]
}

// CustodyOf returns the custody pool for an asset.
func (b *MemoryBank) CustodyOf(asset entity.Asset) entity.Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.custody[asset]
}

// Pull implements port.TransferService.
func (b *MemoryBank) Pull(ctx context.Context, asset entity.Asset, from entity.Address, amount entity.Amount) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	held := b.holdings[from][asset]
	if held < amount {
		return fmt.Errorf("pull %s %s from %s: insufficient external holdings, have %s", amount, asset, from, held)
	}
	b.holdings[from][asset] = held - amount
	b.custody[asset] += amount
	return nil
}

// Push implements port.TransferService.
func (b *MemoryBank) Push(ctx context.Context, asset entity.Asset, to entity.Address, amount entity.Amount) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	pool := b.custody[asset]
	if pool < amount {
		return fmt.Errorf("push %s %s to %s: custody pool cannot cover it, have %s", amount, asset, to, pool)
	}
	b.custody[asset] = pool - amount
	if b.holdings[to] == nil {
		b.holdings[to] = make(map[entity.Asset]entity.Amount)
	}
	b.holdings[to][asset] += amount
	return nil
}
