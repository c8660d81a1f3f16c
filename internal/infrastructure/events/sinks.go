package events

import (
	"context"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
	"strongbox.dev/internal/infrastructure/logger"
)

// LogSink writes every event to the structured log.
type LogSink struct {
	logger logger.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(logger logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Publish implements port.EventSink.
func (s *LogSink) Publish(ctx context.Context, event entity.Event) error {
	attrs := []any{"event_id", event.ID, "kind", string(event.Kind)}
	if event.Account != "" {
		attrs = append(attrs, "account", event.Account)
	}
	if event.Asset != "" {
		attrs = append(attrs, "asset", event.Asset)
	}
	if event.Amount != "" {
		attrs = append(attrs, "amount", event.Amount)
	}
	if event.Enabled != nil {
		attrs = append(attrs, "enabled", *event.Enabled)
	}
	s.logger.LogInfo(ctx, "Ledger event", attrs...)
	return nil
}

// JournalSink records every event into the audit journal.
type JournalSink struct {
	journal port.Journal
}

// NewJournalSink creates a sink backed by the given journal.
func NewJournalSink(journal port.Journal) *JournalSink {
	return &JournalSink{journal: journal}
}

// Publish implements port.EventSink.
func (s *JournalSink) Publish(ctx context.Context, event entity.Event) error {
	return s.journal.Record(ctx, event)
}
