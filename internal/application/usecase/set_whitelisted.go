package usecase

import (
	"context"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
)

// SetWhitelistedUseCase handles administrator whitelist changes
type SetWhitelistedUseCase struct {
	ledger port.Ledger
}

// NewSetWhitelistedUseCase creates a new SetWhitelistedUseCase
func NewSetWhitelistedUseCase(ledger port.Ledger) *SetWhitelistedUseCase {
	return &SetWhitelistedUseCase{
		ledger: ledger,
	}
}

// Execute adds or removes an asset from the deposit whitelist as the caller
func (uc *SetWhitelistedUseCase) Execute(ctx context.Context, caller entity.Address, req *entity.WhitelistRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	asset, err := entity.ParseAsset(req.Asset)
	if err != nil {
		return err
	}

	return uc.ledger.SetWhitelisted(ctx, caller, asset, *req.Enabled)
}
