package events

import (
	"context"
	"sync"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
	"strongbox.dev/internal/infrastructure/logger"
)

// Bus fans ledger events out to its sinks in order. Sink failures are logged
// and swallowed so a broken consumer can never abort a settled operation.
type Bus struct {
	mu     sync.RWMutex
	sinks  []port.EventSink
	logger logger.Logger
}

// NewBus creates an empty bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe adds a sink. Sinks do not see events published before they were
// registered.
func (b *Bus) Subscribe(sink port.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

// Publish implements port.EventSink.
func (b *Bus) Publish(ctx context.Context, event entity.Event) error {
	b.mu.RLock()
	sinks := make([]port.EventSink, len(b.sinks))
	copy(sinks, b.sinks)
	b.mu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Publish(ctx, event); err != nil {
			b.logger.LogError(ctx, "Event sink failed", err,
				"kind", string(event.Kind),
				"event_id", event.ID)
		}
	}
	return nil
}
