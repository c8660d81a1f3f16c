package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
	"strongbox.dev/internal/infrastructure/logger"
)

// CustodyLedger implements the Ledger port. It tracks deposited balances per
// account and asset; real value moves through the TransferService and the
// ledger records the result.
//
// Mutations serialize on one mutex, but the lock is never held across a
// TransferService call. Withdraw debits before pushing and credits back if
// the push fails; deposit pulls before crediting and re-checks the deposit
// gates at commit. A transfer backend therefore never observes a
// half-applied mutation, and any callback into the ledger runs against
// fully committed state.
//
// A withdrawal debit stays reserved until its push settles or is reversed.
// The deposit gates count reserved funds as balance, so the reversing credit
// can never overflow a balance that a concurrent deposit refilled.
type CustodyLedger struct {
	mu        sync.RWMutex
	balances  map[entity.Address]map[entity.Asset]entity.Amount
	reserved  map[entity.Address]map[entity.Asset]entity.Amount
	whitelist map[entity.Asset]struct{}
	paused    bool
	sequence  uint64

	admin    entity.Address
	transfer port.TransferService
	events   port.EventSink
	logger   logger.Logger
}

// NewCustodyLedger creates an empty, unpaused ledger with a fixed
// administrator identity.
func NewCustodyLedger(admin entity.Address, transfer port.TransferService, events port.EventSink, logger logger.Logger) (*CustodyLedger, error) {
	if admin.IsZero() {
		return nil, fmt.Errorf("%w: administrator address required", entity.ErrInvalidAddress)
	}
	if transfer == nil {
		return nil, errors.New("transfer service required")
	}
	return &CustodyLedger{
		balances:  make(map[entity.Address]map[entity.Asset]entity.Amount),
		reserved:  make(map[entity.Address]map[entity.Asset]entity.Amount),
		whitelist: make(map[entity.Asset]struct{}),
		admin:     admin,
		transfer:  transfer,
		events:    events,
		logger:    logger,
	}, nil
}

// Deposit pulls amount of asset from the caller's external holdings into
// custody and credits the caller. The asset must be whitelisted and
// transfers must not be paused. Zero amounts are rejected.
func (l *CustodyLedger) Deposit(ctx context.Context, caller entity.Address, asset entity.Asset, amount entity.Amount) error {
	if err := checkParties(caller, asset); err != nil {
		return err
	}
	if amount == 0 {
		return fmt.Errorf("%w: deposit amount must be positive", entity.ErrInvalidAmount)
	}

	l.mu.RLock()
	paused := l.paused
	_, listed := l.whitelist[asset]
	headroom := l.headroom(caller, asset)
	l.mu.RUnlock()

	if paused {
		return entity.ErrPaused
	}
	if !listed {
		return fmt.Errorf("%w: %s", entity.ErrAssetNotWhitelisted, asset)
	}
	if uint64(amount) > headroom {
		return fmt.Errorf("%w: balance overflow", entity.ErrInvalidAmount)
	}

	// Pull first so a failed transfer leaves the ledger untouched.
	if err := l.transfer.Pull(ctx, asset, caller, amount); err != nil {
		l.logger.LogWarning(ctx, "Deposit pull failed",
			"account", caller.String(),
			"asset", asset.String(),
			"amount", amount.String(),
			"error", err.Error())
		return fmt.Errorf("%w: %v", entity.ErrExternalTransfer, err)
	}

	l.mu.Lock()
	// The pull ran without the lock; the pause flag, the whitelist and the
	// balance may all have moved. The deposit gates stay authoritative at
	// commit, so a violation returns the pulled funds.
	if gateErr := l.depositGate(caller, asset, amount); gateErr != nil {
		l.mu.Unlock()
		l.returnFunds(ctx, asset, caller, amount)
		return gateErr
	}
	if l.balances[caller] == nil {
		l.balances[caller] = make(map[entity.Asset]entity.Amount)
	}
	l.balances[caller][asset] += amount
	newBalance := l.balances[caller][asset]
	seq := l.nextSequence()
	l.mu.Unlock()

	l.emit(ctx, entity.NewDepositedEvent(caller, asset, amount).WithSequence(seq))
	l.logger.LogInfo(ctx, "Deposit credited",
		"account", caller.String(),
		"asset", asset.String(),
		"amount", amount.String(),
		"new_balance", newBalance.String())
	return nil
}

// depositGate re-checks the deposit preconditions under the write lock.
func (l *CustodyLedger) depositGate(caller entity.Address, asset entity.Asset, amount entity.Amount) error {
	if l.paused {
		return entity.ErrPaused
	}
	if _, listed := l.whitelist[asset]; !listed {
		return fmt.Errorf("%w: %s", entity.ErrAssetNotWhitelisted, asset)
	}
	if uint64(amount) > l.headroom(caller, asset) {
		return fmt.Errorf("%w: balance overflow", entity.ErrInvalidAmount)
	}
	return nil
}

// headroom returns how far the balance can still grow. Reserved withdrawal
// debits count as balance: balance + reserved never exceeds MaxUint64, so
// the subtraction cannot wrap. Callers must hold at least the read lock.
func (l *CustodyLedger) headroom(account entity.Address, asset entity.Asset) uint64 {
	return math.MaxUint64 - uint64(l.balances[account][asset]) - uint64(l.reserved[account][asset])
}

// reserve marks a withdrawal debit as in flight. Callers must hold the
// write lock.
func (l *CustodyLedger) reserve(account entity.Address, asset entity.Asset, amount entity.Amount) {
	if l.reserved[account] == nil {
		l.reserved[account] = make(map[entity.Asset]entity.Amount)
	}
	l.reserved[account][asset] += amount
}

// release clears a reservation once its push settled or was reversed.
// Callers must hold the write lock.
func (l *CustodyLedger) release(account entity.Address, asset entity.Asset, amount entity.Amount) {
	l.reserved[account][asset] -= amount
	if l.reserved[account][asset] == 0 {
		delete(l.reserved[account], asset)
		if len(l.reserved[account]) == 0 {
			delete(l.reserved, account)
		}
	}
}

// nextSequence issues the commit sequence stamped onto events. Callers must
// hold the write lock.
func (l *CustodyLedger) nextSequence() uint64 {
	l.sequence++
	return l.sequence
}

// returnFunds pushes a pulled amount back after a deposit failed at commit.
// A failed return strands value in custody, so it is logged for operator
// reconciliation.
func (l *CustodyLedger) returnFunds(ctx context.Context, asset entity.Asset, to entity.Address, amount entity.Amount) {
	if err := l.transfer.Push(ctx, asset, to, amount); err != nil {
		l.logger.LogError(ctx, "Failed to return pulled funds, custody holds unrecorded value", err,
			"account", to.String(),
			"asset", asset.String(),
			"amount", amount.String())
	}
}

// Withdraw debits amount of asset from the caller and pushes it from custody
// to the caller's external holdings. The whitelist never gates withdrawals,
// so balances of de-whitelisted assets stay withdrawable. Zero amounts are
// rejected, matching deposit.
func (l *CustodyLedger) Withdraw(ctx context.Context, caller entity.Address, asset entity.Asset, amount entity.Amount) error {
	if err := checkParties(caller, asset); err != nil {
		return err
	}
	if amount == 0 {
		return fmt.Errorf("%w: withdraw amount must be positive", entity.ErrInvalidAmount)
	}

	l.mu.Lock()
	if l.paused {
		l.mu.Unlock()
		return entity.ErrPaused
	}
	balance := l.balances[caller][asset]
	if balance < amount {
		l.mu.Unlock()
		return fmt.Errorf("%w: have %s, want %s", entity.ErrInsufficientBalance, balance, amount)
	}
	// Debit before the push so the same funds cannot be withdrawn twice
	// while the transfer is in flight. The debit stays reserved until the
	// push settles, keeping the freed headroom closed to deposits so the
	// failure path can credit it back without overflowing.
	newBalance := balance - amount
	l.balances[caller][asset] = newBalance
	l.reserve(caller, asset, amount)
	l.mu.Unlock()

	if err := l.transfer.Push(ctx, asset, caller, amount); err != nil {
		l.mu.Lock()
		l.balances[caller][asset] += amount
		l.release(caller, asset, amount)
		l.mu.Unlock()
		l.logger.LogWarning(ctx, "Withdrawal push failed, debit reversed",
			"account", caller.String(),
			"asset", asset.String(),
			"amount", amount.String(),
			"error", err.Error())
		return fmt.Errorf("%w: %v", entity.ErrExternalTransfer, err)
	}

	l.mu.Lock()
	l.release(caller, asset, amount)
	seq := l.nextSequence()
	l.mu.Unlock()

	l.emit(ctx, entity.NewWithdrawnEvent(caller, asset, amount).WithSequence(seq))
	l.logger.LogInfo(ctx, "Withdrawal completed",
		"account", caller.String(),
		"asset", asset.String(),
		"amount", amount.String(),
		"new_balance", newBalance.String())
	return nil
}

// SetPaused toggles the transfer pause flag. Administrator only, idempotent.
// The flag never blocks administrator operations themselves.
func (l *CustodyLedger) SetPaused(ctx context.Context, caller entity.Address, paused bool) error {
	if err := l.authorize(caller); err != nil {
		return err
	}

	l.mu.Lock()
	l.paused = paused
	seq := l.nextSequence()
	l.mu.Unlock()

	l.emit(ctx, entity.NewPausedChangedEvent(paused).WithSequence(seq))
	l.logger.LogInfo(ctx, "Pause flag set", "paused", paused)
	return nil
}

// SetWhitelisted adds or removes an asset from the deposit whitelist.
// Administrator only, idempotent. Removing an asset leaves balances already
// deposited untouched.
func (l *CustodyLedger) SetWhitelisted(ctx context.Context, caller entity.Address, asset entity.Asset, enabled bool) error {
	if err := l.authorize(caller); err != nil {
		return err
	}
	if asset.IsZero() {
		return fmt.Errorf("%w: null asset", entity.ErrInvalidAsset)
	}

	l.mu.Lock()
	if enabled {
		l.whitelist[asset] = struct{}{}
	} else {
		delete(l.whitelist, asset)
	}
	seq := l.nextSequence()
	l.mu.Unlock()

	l.emit(ctx, entity.NewWhitelistChangedEvent(asset, enabled).WithSequence(seq))
	l.logger.LogInfo(ctx, "Whitelist updated",
		"asset", asset.String(),
		"enabled", enabled)
	return nil
}

// BalanceOf returns the recorded balance, zero for unknown pairs.
func (l *CustodyLedger) BalanceOf(ctx context.Context, account entity.Address, asset entity.Asset) (entity.Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account][asset], nil
}

// Balances returns a copy of every asset balance recorded for the account.
func (l *CustodyLedger) Balances(ctx context.Context, account entity.Address) (map[entity.Asset]entity.Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[entity.Asset]entity.Amount, len(l.balances[account]))
	for asset, amount := range l.balances[account] {
		out[asset] = amount
	}
	return out, nil
}

// IsWhitelisted reports whether deposits of the asset are accepted.
func (l *CustodyLedger) IsWhitelisted(ctx context.Context, asset entity.Asset) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, listed := l.whitelist[asset]
	return listed, nil
}

// IsPaused reports whether transfers are paused.
func (l *CustodyLedger) IsPaused(ctx context.Context) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paused, nil
}

func (l *CustodyLedger) authorize(caller entity.Address) error {
	if caller != l.admin {
		return fmt.Errorf("%w: administrator only", entity.ErrUnauthorized)
	}
	return nil
}

func (l *CustodyLedger) emit(ctx context.Context, ev entity.Event) {
	if l.events == nil {
		return
	}
	if err := l.events.Publish(ctx, ev); err != nil {
		l.logger.LogError(ctx, "Failed to publish ledger event", err,
			"kind", string(ev.Kind),
			"event_id", ev.ID)
	}
}

func checkParties(caller entity.Address, asset entity.Asset) error {
	if caller.IsZero() {
		return fmt.Errorf("%w: caller required", entity.ErrInvalidAddress)
	}
	if asset.IsZero() {
		return fmt.Errorf("%w: null asset", entity.ErrInvalidAsset)
	}
	return nil
}
