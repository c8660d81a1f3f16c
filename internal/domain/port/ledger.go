package port

import (
	"context"

	"strongbox.dev/internal/domain/entity"
)

// Ledger is the port for the custodial balance state machine. Mutations are
// serialized per instance; the caller identity is established by the host
// and passed explicitly.
type Ledger interface {
	// Deposit moves amount of asset from the caller's external holdings
	// into custody and credits the caller's balance.
	Deposit(ctx context.Context, caller entity.Address, asset entity.Asset, amount entity.Amount) error

	// Withdraw debits the caller's balance and moves amount of asset from
	// custody back to the caller's external holdings.
	Withdraw(ctx context.Context, caller entity.Address, asset entity.Asset, amount entity.Amount) error

	// SetPaused toggles the ledger-wide transfer pause. Administrator only.
	SetPaused(ctx context.Context, caller entity.Address, paused bool) error

	// SetWhitelisted adds or removes an asset from the deposit whitelist.
	// Administrator only.
	SetWhitelisted(ctx context.Context, caller entity.Address, asset entity.Asset, enabled bool) error

	// BalanceOf returns the recorded balance, zero for unknown pairs.
	BalanceOf(ctx context.Context, account entity.Address, asset entity.Asset) (entity.Amount, error)

	// Balances returns every asset balance recorded for the account.
	Balances(ctx context.Context, account entity.Address) (map[entity.Asset]entity.Amount, error)

	// IsWhitelisted reports whether deposits of the asset are accepted.
	IsWhitelisted(ctx context.Context, asset entity.Asset) (bool, error)

	// IsPaused reports whether transfers are paused.
	IsPaused(ctx context.Context) (bool, error)
}
