package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventKind labels an observable ledger event.
type EventKind string

const (
	EventDeposited        EventKind = "deposited"
	EventWithdrawn        EventKind = "withdrawn"
	EventWhitelistChanged EventKind = "whitelist_changed"
	EventPausedChanged    EventKind = "paused_changed"
)

// Event is a record of a committed ledger mutation. Events exist for
// monitoring and audit; nothing inside the ledger consumes them. Sequence
// carries the ledger commit order; publication to sinks can interleave under
// concurrency, so consumers needing commit order sort by it.
type Event struct {
	ID         string    `json:"id"`
	Sequence   uint64    `json:"sequence"`
	Kind       EventKind `json:"kind"`
	Account    string    `json:"account,omitempty"`
	Asset      string    `json:"asset,omitempty"`
	Amount     string    `json:"amount,omitempty"`
	Enabled    *bool     `json:"enabled,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WithSequence stamps the commit sequence assigned by the ledger.
func (e Event) WithSequence(seq uint64) Event {
	e.Sequence = seq
	return e
}

func newEvent(kind EventKind) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
	}
}

// NewDepositedEvent records a settled deposit.
func NewDepositedEvent(account Address, asset Asset, amount Amount) Event {
	ev := newEvent(EventDeposited)
	ev.Account = account.String()
	ev.Asset = asset.String()
	ev.Amount = amount.String()
	return ev
}

// NewWithdrawnEvent records a settled withdrawal.
func NewWithdrawnEvent(account Address, asset Asset, amount Amount) Event {
	ev := newEvent(EventWithdrawn)
	ev.Account = account.String()
	ev.Asset = asset.String()
	ev.Amount = amount.String()
	return ev
}

// NewWhitelistChangedEvent records an administrator whitelist change.
func NewWhitelistChangedEvent(asset Asset, enabled bool) Event {
	ev := newEvent(EventWhitelistChanged)
	ev.Asset = asset.String()
	ev.Enabled = &enabled
	return ev
}

// NewPausedChangedEvent records an administrator pause toggle.
func NewPausedChangedEvent(paused bool) Event {
	ev := newEvent(EventPausedChanged)
	ev.Enabled = &paused
	return ev
}
