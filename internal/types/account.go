package types

import "time"

// AccountInfo is a point-in-time account snapshot supplied by the brokerage
// collaborator. Risk checks read it instead of locking the account.
type AccountInfo struct {
	// Balance is the current cash balance (excluding unrealized P&L)
	Balance float64 `json:"balance" yaml:"balance"`
	// Equity is the total account value (balance + unrealized P&L)
	Equity float64 `json:"equity" yaml:"equity"`
	// BuyingPower is the available amount for new purchases
	BuyingPower float64 `json:"buying_power" yaml:"buying_power"`
}

// Position represents current holdings of one symbol.
type Position struct {
	Symbol        string    `json:"symbol" yaml:"symbol"`
	Quantity      float64   `json:"quantity" yaml:"quantity"`
	AvgEntryPrice float64   `json:"avg_entry_price" yaml:"avg_entry_price"`
	MarketValue   float64   `json:"market_value" yaml:"market_value"`
	OpenedAt      time.Time `json:"opened_at" yaml:"opened_at"`
}
