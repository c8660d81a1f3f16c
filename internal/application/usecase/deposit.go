package usecase

import (
	"context"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
)

// DepositUseCase handles deposits into custody
type DepositUseCase struct {
	ledger port.Ledger
}

// NewDepositUseCase creates a new DepositUseCase
func NewDepositUseCase(ledger port.Ledger) *DepositUseCase {
	return &DepositUseCase{
		ledger: ledger,
	}
}

// Execute validates the request and performs the deposit as the caller
func (uc *DepositUseCase) Execute(ctx context.Context, caller entity.Address, req *entity.DepositRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	asset, err := entity.ParseAsset(req.Asset)
	if err != nil {
		return err
	}
	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		return err
	}

	return uc.ledger.Deposit(ctx, caller, asset, amount)
}
