package usecase

import (
	"context"
	"testing"

	"strongbox.dev/internal/domain/entity"
)

func TestGetStatusUseCase_Paused(t *testing.T) {
	ledger := &mockLedger{
		isPausedFunc: func(context.Context) (bool, error) {
			return true, nil
		},
	}

	useCase := NewGetStatusUseCase(ledger)
	result, err := useCase.Paused(context.Background())
	if err != nil {
		t.Fatalf("GetStatusUseCase.Paused() error = %v", err)
	}
	if !result.Paused {
		t.Error("Result.Paused = false, want true")
	}
}

func TestGetStatusUseCase_Asset(t *testing.T) {
	ledger := &mockLedger{
		isWhitelistedFunc: func(_ context.Context, asset entity.Asset) (bool, error) {
			return asset == "BTC", nil
		},
	}

	useCase := NewGetStatusUseCase(ledger)

	result, err := useCase.Asset(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("GetStatusUseCase.Asset() error = %v", err)
	}
	if !result.Whitelisted || result.Asset != "BTC" {
		t.Errorf("Result = %+v, want whitelisted BTC", result)
	}

	result, err = useCase.Asset(context.Background(), "DOGE")
	if err != nil {
		t.Fatalf("GetStatusUseCase.Asset() error = %v", err)
	}
	if result.Whitelisted {
		t.Errorf("Result = %+v, want non-whitelisted DOGE", result)
	}
}
