package usecase

import (
	"context"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/domain/port"
)

// GetStatusUseCase handles pause flag and whitelist queries
type GetStatusUseCase struct {
	ledger port.Ledger
}

// NewGetStatusUseCase creates a new GetStatusUseCase
func NewGetStatusUseCase(ledger port.Ledger) *GetStatusUseCase {
	return &GetStatusUseCase{
		ledger: ledger,
	}
}

// Paused reports whether transfers are paused
func (uc *GetStatusUseCase) Paused(ctx context.Context) (*entity.StatusResponse, error) {
	paused, err := uc.ledger.IsPaused(ctx)
	if err != nil {
		return nil, err
	}
	return &entity.StatusResponse{Paused: paused}, nil
}

// Asset reports whitelist membership for one asset
func (uc *GetStatusUseCase) Asset(ctx context.Context, asset entity.Asset) (*entity.AssetStatusResponse, error) {
	listed, err := uc.ledger.IsWhitelisted(ctx, asset)
	if err != nil {
		return nil, err
	}
	return &entity.AssetStatusResponse{
		Asset:       asset.String(),
		Whitelisted: listed,
	}, nil
}
