package custody

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"strongbox.dev/internal/domain/entity"
	"strongbox.dev/internal/infrastructure/logger"
)

// RemoteConfig holds the connection settings for a custody provider.
type RemoteConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// RemoteBank implements the TransferService port against a custody
// provider's HTTP API. Transfers are one-way requests; the provider has no
// path back into the ledger.
type RemoteBank struct {
	client *resty.Client
	logger logger.Logger
}

// NewRemoteBank creates a bank client for the configured provider.
func NewRemoteBank(cfg RemoteConfig, logger logger.Logger) *RemoteBank {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)
	return &RemoteBank{
		client: client,
		logger: logger,
	}
}

type transferRequest struct {
	Asset  string `json:"asset"`
	Party  string `json:"party"`
	Amount string `json:"amount"`
}

// Pull implements port.TransferService.
func (b *RemoteBank) Pull(ctx context.Context, asset entity.Asset, from entity.Address, amount entity.Amount) error {
	return b.transfer(ctx, "/api/transfers/pull", asset, from, amount)
}

// Push implements port.TransferService.
func (b *RemoteBank) Push(ctx context.Context, asset entity.Asset, to entity.Address, amount entity.Amount) error {
	return b.transfer(ctx, "/api/transfers/push", asset, to, amount)
}

func (b *RemoteBank) transfer(ctx context.Context, path string, asset entity.Asset, party entity.Address, amount entity.Amount) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(&transferRequest{
			Asset:  asset.String(),
			Party:  party.String(),
			Amount: amount.String(),
		}).
		Post(path)
	if err != nil {
		b.logger.LogError(ctx, "Custody transfer request failed", err, "path", path)
		return fmt.Errorf("custody transfer: %w", err)
	}
	if resp.IsError() {
		b.logger.LogWarning(ctx, "Custody transfer rejected",
			"path", path,
			"status", resp.StatusCode(),
			"body", resp.String())
		return fmt.Errorf("custody transfer: %s rejected with status %d", path, resp.StatusCode())
	}
	return nil
}
