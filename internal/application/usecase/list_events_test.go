package usecase

import (
	"context"
	"errors"
	"testing"

	"strongbox.dev/internal/domain/entity"
)

// mockJournal is a mock implementation of the Journal port
type mockJournal struct {
	recordFunc func(ctx context.Context, event entity.Event) error
	recentFunc func(ctx context.Context, limit int) ([]entity.Event, error)
}

func (m *mockJournal) Record(ctx context.Context, event entity.Event) error {
	if m.recordFunc != nil {
		return m.recordFunc(ctx, event)
	}
	return nil
}

func (m *mockJournal) Recent(ctx context.Context, limit int) ([]entity.Event, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx, limit)
	}
	return nil, nil
}

func TestListEventsUseCase_Execute(t *testing.T) {
	admin := testAddress(1)
	stranger := testAddress(2)
	stored := []entity.Event{
		entity.NewPausedChangedEvent(true),
		entity.NewWhitelistChangedEvent("BTC", true),
	}

	tests := []struct {
		name       string
		caller     entity.Address
		journalErr error
		wantErr    error
		wantLen    int
	}{
		{
			name:    "administrator reads the journal",
			caller:  admin,
			wantLen: 2,
		},
		{
			name:    "non-administrator rejected",
			caller:  stranger,
			wantErr: entity.ErrUnauthorized,
		},
		{
			name:       "journal error propagates",
			caller:     admin,
			journalErr: errors.New("journal down"),
			wantErr:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journal := &mockJournal{
				recentFunc: func(_ context.Context, limit int) ([]entity.Event, error) {
					if tt.journalErr != nil {
						return nil, tt.journalErr
					}
					if limit < len(stored) {
						return stored[:limit], nil
					}
					return stored, nil
				},
			}

			useCase := NewListEventsUseCase(journal, admin)
			events, err := useCase.Execute(context.Background(), tt.caller, 10)

			if tt.journalErr != nil {
				if !errors.Is(err, tt.journalErr) {
					t.Errorf("ListEventsUseCase.Execute() error = %v, want %v", err, tt.journalErr)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ListEventsUseCase.Execute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && len(events) != tt.wantLen {
				t.Errorf("returned %d events, want %d", len(events), tt.wantLen)
			}
		})
	}
}
