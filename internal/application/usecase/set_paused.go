package usecase

import (
	"context"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
)

// SetPausedUseCase handles the administrator pause toggle
type SetPausedUseCase struct {
	ledger port.Ledger
}

// NewSetPausedUseCase creates a new SetPausedUseCase
func NewSetPausedUseCase(ledger port.Ledger) *SetPausedUseCase {
	return &SetPausedUseCase{
		ledger: ledger,
	}
}

// Execute toggles the transfer pause flag as the caller
func (uc *SetPausedUseCase) Execute(ctx context.Context, caller entity.Address, req *entity.PauseRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return uc.ledger.SetPaused(ctx, caller, *req.Paused)
}
