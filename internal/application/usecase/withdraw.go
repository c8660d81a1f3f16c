package usecase

import (
	"context"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
)

// WithdrawUseCase handles withdrawals out of custody
type WithdrawUseCase struct {
	ledger port.Ledger
}

// NewWithdrawUseCase creates a new WithdrawUseCase
func NewWithdrawUseCase(ledger port.Ledger) *WithdrawUseCase {
	return &WithdrawUseCase{
		ledger: ledger,
	}
}

// Execute validates the request and performs the withdrawal as the caller
func (uc *WithdrawUseCase) Execute(ctx context.Context, caller entity.Address, req *entity.WithdrawRequest) error {
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

	return uc.ledger.Withdraw(ctx, caller, asset, amount)
}
