package entity

import "errors"

// Request payload shape errors. Raised before any ledger state is consulted.
var (
	ErrMissingAsset   = errors.New("missing required field: asset")
	ErrMissingAmount  = errors.New("missing required field: amount")
	ErrMissingPaused  = errors.New("missing required field: paused")
	ErrMissingEnabled = errors.New("missing required field: enabled")
)

// Ledger operation errors. Every failed operation leaves balances, the
// whitelist and the pause flag exactly as they were.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidAsset        = errors.New("invalid asset")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrAssetNotWhitelisted = errors.New("asset not whitelisted")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPaused              = errors.New("transfers paused")
	ErrExternalTransfer    = errors.New("external transfer failed")
)
