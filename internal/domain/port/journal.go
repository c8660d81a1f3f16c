package port

import (
	"context"

	"strongbox.dev/internal/domain/entity"
)

// Journal is the port for the persistent audit trail of ledger events.
type Journal interface {
	// Record appends one event to the trail.
	Record(ctx context.Context, event entity.Event) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]entity.Event, error)
}

// EventSink is the port for consumers of observable ledger events.
type EventSink interface {
	Publish(ctx context.Context, event entity.Event) error
}
