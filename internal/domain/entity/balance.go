package entity

// BalanceResponse represents every asset balance recorded for an account
type BalanceResponse struct {
	Account  string            `json:"account"`
	Balances map[string]string `json:"balances"`
}

// AssetBalanceResponse represents a single account and asset balance
type AssetBalanceResponse struct {
	Account string `json:"account"`
	Asset   string `json:"asset"`
	Amount  string `json:"amount"`
}

// StatusResponse represents the ledger-wide pause flag
type StatusResponse struct {
	Paused bool `json:"paused"`
}

// AssetStatusResponse represents whitelist membership for one asset
type AssetStatusResponse struct {
	Asset       string `json:"asset"`
	Whitelisted bool   `json:"whitelisted"`
}
