package entity

// DepositRequest represents the payload of a deposit call
type DepositRequest struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// Validate validates the deposit request
func (r *DepositRequest) Validate() error {
	if r.Asset == "" {
		return ErrMissingAsset
	}
	if r.Amount == "" {
		return ErrMissingAmount
	}
	return nil
}

// WithdrawRequest represents the payload of a withdrawal call
type WithdrawRequest struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

// Validate validates the withdrawal request
func (r *WithdrawRequest) Validate() error {
	if r.Asset == "" {
		return ErrMissingAsset
	}
	if r.Amount == "" {
		return ErrMissingAmount
	}
	return nil
}

// PauseRequest represents the payload of an administrator pause toggle
type PauseRequest struct {
	Paused *bool `json:"paused"`
}

// Validate validates the pause request
func (r *PauseRequest) Validate() error {
	if r.Paused == nil {
		return ErrMissingPaused
	}
	return nil
}

// WhitelistRequest represents the payload of an administrator whitelist change
type WhitelistRequest struct {
	Asset   string `json:"asset"`
	Enabled *bool  `json:"enabled"`
}

// Validate validates the whitelist request
func (r *WhitelistRequest) Validate() error {
	if r.Asset == "" {
		return ErrMissingAsset
	}
	if r.Enabled == nil {
		return ErrMissingEnabled
	}
	return nil
}
