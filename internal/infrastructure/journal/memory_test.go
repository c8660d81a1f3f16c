package journal

import (
	"context"
	"fmt"
	"testing"

	"strongbox.dev/internal/domain/entity"
)

func TestMemoryJournal_Recent(t *testing.T) {
	ctx := context.Background()
	journal := NewMemoryJournal()

	for i := 0; i < 5; i++ {
		ev := entity.NewWhitelistChangedEvent(entity.Asset(fmt.Sprintf("AS%d", i)), true)
		if err := journal.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		limit     int
		wantLen   int
		wantFirst string
	}{
		{
			name:      "limited read returns newest first",
			limit:     2,
			wantLen:   2,
			wantFirst: "AS4",
		},
		{
			name:      "zero limit returns everything",
			limit:     0,
			wantLen:   5,
			wantFirst: "AS4",
		},
		{
			name:      "limit above size returns everything",
			limit:     50,
			wantLen:   5,
			wantFirst: "AS4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := journal.Recent(ctx, tt.limit)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(events) != tt.wantLen {
				t.Fatalf("Recent() returned %d events, want %d", len(events), tt.wantLen)
			}
			if events[0].Asset != tt.wantFirst {
				t.Errorf("first event asset = %q, want %q", events[0].Asset, tt.wantFirst)
			}
		})
	}
}

func TestMemoryJournal_RecentOrdersBySequence(t *testing.T) {
	ctx := context.Background()
	journal := NewMemoryJournal()

	// Sinks can deliver events out of commit order; the read restores it.
	for _, seq := range []uint64{2, 1, 3} {
		ev := entity.NewWhitelistChangedEvent(entity.Asset(fmt.Sprintf("AS%d", seq)), true).WithSequence(seq)
		if err := journal.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	events, err := journal.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	want := []uint64{3, 2}
	if len(events) != len(want) {
		t.Fatalf("Recent() returned %d events, want %d", len(events), len(want))
	}
	for i, seq := range want {
		if events[i].Sequence != seq {
			t.Errorf("event %d sequence = %d, want %d", i, events[i].Sequence, seq)
		}
	}
}

func TestMemoryJournal_Bounded(t *testing.T) {
	ctx := context.Background()
	journal := &MemoryJournal{limit: 3}

	for i := 0; i < 10; i++ {
		ev := entity.NewPausedChangedEvent(i%2 == 0)
		if err := journal.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	events, err := journal.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(events) != 3 {
		t.Errorf("journal holds %d events, want capacity 3", len(events))
	}
}

func TestEventRow_WrapUnwrap(t *testing.T) {
	enabled := true

	tests := []struct {
		name  string
		event entity.Event
	}{
		{
			name:  "transfer event",
			event: entity.NewDepositedEvent(entity.Address("4fE9H3nTz"), "BTC", 42).WithSequence(7),
		},
		{
			name:  "whitelist event with enabled flag",
			event: entity.NewWhitelistChangedEvent("ETH", enabled).WithSequence(8),
		},
		{
			name:  "pause event without account or asset",
			event: entity.NewPausedChangedEvent(false).WithSequence(9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := new(eventRow).wrap(tt.event).unwrap()

			if got.ID != tt.event.ID || got.Sequence != tt.event.Sequence || got.Kind != tt.event.Kind {
				t.Errorf("identity: got %+v, want %+v", got, tt.event)
			}
			if got.Account != tt.event.Account || got.Asset != tt.event.Asset || got.Amount != tt.event.Amount {
				t.Errorf("payload: got %+v, want %+v", got, tt.event)
			}
			if (got.Enabled == nil) != (tt.event.Enabled == nil) {
				t.Fatalf("enabled presence: got %+v, want %+v", got.Enabled, tt.event.Enabled)
			}
			if got.Enabled != nil && *got.Enabled != *tt.event.Enabled {
				t.Errorf("enabled: got %v, want %v", *got.Enabled, *tt.event.Enabled)
			}
			if !got.OccurredAt.Equal(tt.event.OccurredAt) {
				t.Errorf("occurred_at: got %v, want %v", got.OccurredAt, tt.event.OccurredAt)
			}
		})
	}
}
