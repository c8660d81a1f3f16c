package usecase

import (
	"context"
	"fmt"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
)

// ListEventsUseCase exposes the audit journal to the administrator
type ListEventsUseCase struct {
	journal port.Journal
	admin   entity.Address
}

// NewListEventsUseCase creates a new ListEventsUseCase
func NewListEventsUseCase(journal port.Journal, admin entity.Address) *ListEventsUseCase {
	return &ListEventsUseCase{
		journal: journal,
		admin:   admin,
	}
}

// Execute returns up to limit recent events, newest first. Administrator only.
func (uc *ListEventsUseCase) Execute(ctx context.Context, caller entity.Address, limit int) ([]entity.Event, error) {
	if caller != uc.admin {
		return nil, fmt.Errorf("%w: administrator only", entity.ErrUnauthorized)
	}
	return uc.journal.Recent(ctx, limit)
}
