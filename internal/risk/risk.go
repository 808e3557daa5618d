// Package risk implements position sizing and portfolio limit checks. The
// manager is pure computation against supplied snapshots; it holds no state
// and performs no I/O, so concurrent evaluation is safe.
package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alpatrade/alpatrade/internal/types"
)

// Manager sizes positions and enforces portfolio-level limits for one
// strategy config.
type Manager struct {
	config types.StrategyConfig
}

// NewManager creates a risk manager for the given strategy config.
func NewManager(config types.StrategyConfig) *Manager {
	return &Manager{config: config}
}

// SizePosition returns the whole number of shares the strategy's capital
// allocation buys at the given price. Returns 0 when the allocation does not
// cover a single share; callers treat 0 as "signal dropped", not an error.
func (m *Manager) SizePosition(price, accountEquity float64) int64 {
	if price <= 0 || accountEquity <= 0 {
		return 0
	}

	allocated := decimal.NewFromFloat(accountEquity).
		Mul(decimal.NewFromFloat(m.config.CapitalAllocationPercent)).
		Div(decimal.NewFromInt(100))

	shares := allocated.Div(decimal.NewFromFloat(price)).IntPart()
	if shares < 1 {
		return 0
	}

	return shares
}

// CheckLimits verifies a prospective trade against the portfolio limits using
// the supplied point-in-time snapshots. It fails closed: any condition that
// cannot be verified results in a rejection, never a trade.
func (m *Manager) CheckLimits(symbol string, side types.Side, quantity int64, price float64, positions []types.Position, account types.AccountInfo) (bool, string) {
	if quantity < 1 {
		return false, "position size is zero"
	}

	if len(positions) >= m.config.MaxPositions {
		return false, fmt.Sprintf("maximum positions limit reached (%d)", m.config.MaxPositions)
	}

	if side == types.SideBuy {
		for _, p := range positions {
			if p.Symbol == symbol {
				return false, fmt.Sprintf("already holding position in %s", symbol)
			}
		}
	}

	notional := decimal.NewFromInt(quantity).Mul(decimal.NewFromFloat(price))
	if notional.GreaterThan(decimal.NewFromFloat(account.BuyingPower)) {
		return false, "insufficient buying power"
	}

	return true, "risk checks passed"
}
