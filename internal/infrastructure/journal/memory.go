package journal

import (
	"context"
	"sort"
	"sync"

	"strongbox.dev/internal/domain/entity"
)

const defaultMemoryLimit = 10000

// MemoryJournal keeps the most recent events in memory. It backs local runs
// and tests when no database is configured.
type MemoryJournal struct {
	mu     sync.RWMutex
	events []entity.Event
	limit  int
}

// NewMemoryJournal creates a journal bounded to the default capacity.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{limit: defaultMemoryLimit}
}

// Record implements port.Journal. Once the capacity is reached the oldest
// events are dropped.
func (j *MemoryJournal) Record(_ context.Context, event entity.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.events = append(j.events, event)
	if len(j.events) > j.limit {
		j.events = j.events[len(j.events)-j.limit:]
	}
	return nil
}

// Recent implements port.Journal, newest first. Events can arrive out of
// commit order, so the read sorts by sequence; unstamped events keep their
// arrival order.
func (j *MemoryJournal) Recent(_ context.Context, limit int) ([]entity.Event, error) {
	j.mu.RLock()
	out := make([]entity.Event, len(j.events))
	for i, ev := range j.events {
		out[len(j.events)-1-i] = ev
	}
	j.mu.RUnlock()

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Sequence > out[b].Sequence
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
