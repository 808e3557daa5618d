package types

import (
	"time"

	"github.com/google/uuid"
)

// Side is the direction of a signal or order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TradingSignal is an immutable value produced by a signal evaluator.
// It is created once per evaluation and never mutated; the risk manager and
// the dispatch state machine only read it.
type TradingSignal struct {
	// ID uniquely identifies the signal. Pending confirmations are keyed by it.
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Side       Side      `json:"side"`
	Confidence float64   `json:"confidence"`
	Price      float64   `json:"price"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	Timeframe  string    `json:"timeframe"`
	// StrategyName is the name of the strategy that produced this signal.
	StrategyName string `json:"strategy_name"`
	// Indicators is a snapshot of the indicator values that produced the signal.
	Indicators map[string]float64 `json:"indicators"`
	Notes      string             `json:"notes"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NewTradingSignal assigns the signal an ID and creation timestamp.
func NewTradingSignal(signal TradingSignal) TradingSignal {
	signal.ID = uuid.NewString()
	signal.CreatedAt = time.Now().UTC()

	return signal
}
