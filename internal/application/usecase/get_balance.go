package usecase

import (
	"context"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
)

// GetBalanceUseCase handles balance retrieval
type GetBalanceUseCase struct {
	ledger port.Ledger
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase
func NewGetBalanceUseCase(ledger port.Ledger) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		ledger: ledger,
	}
}

// Execute returns every asset balance recorded for the account
func (uc *GetBalanceUseCase) Execute(ctx context.Context, account entity.Address) (*entity.BalanceResponse, error) {
	balances, err := uc.ledger.Balances(ctx, account)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(balances))
	for asset, amount := range balances {
		out[asset.String()] = amount.String()
	}

	return &entity.BalanceResponse{
		Account:  account.String(),
		Balances: out,
	}, nil
}

// Asset returns the balance of a single account and asset pair
func (uc *GetBalanceUseCase) Asset(ctx context.Context, account entity.Address, asset entity.Asset) (*entity.AssetBalanceResponse, error) {
	amount, err := uc.ledger.BalanceOf(ctx, account, asset)
	if err != nil {
		return nil, err
	}

	return &entity.AssetBalanceResponse{
		Account: account.String(),
		Asset:   asset.String(),
		Amount:  amount.String(),
	}, nil
}
