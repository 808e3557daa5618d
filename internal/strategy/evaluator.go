// Package strategy implements the per-config signal evaluator for the
// stochastic/CCI rule set.
package strategy

import (
	"fmt"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/alpatrade/alpatrade/internal/indicator"
	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/types"
)

const (
	// signalConfidence is the fixed confidence attached to every signal.
	// Extension point: replace with a weighted score of indicator distances
	// from their thresholds.
	signalConfidence = 0.7

	// rsiFloor rejects buys while price is in free-fall.
	rsiFloor = 25.0
	// rsiCeiling rejects sells while price is still melting up.
	rsiCeiling = 75.0

	// volumeConfirmationRatio is the minimum fraction of the previous bar's
	// volume the latest bar must carry.
	volumeConfirmationRatio = 0.8
)

// Evaluator turns indicator-augmented bars into at most one trading signal per
// evaluation. One instance per strategy config; stateless between calls.
type Evaluator struct {
	config types.StrategyConfig
	log    *logger.Logger
}

// NewEvaluator creates an evaluator for the given strategy config.
func NewEvaluator(config types.StrategyConfig, log *logger.Logger) *Evaluator {
	return &Evaluator{
		config: config,
		log:    log,
	}
}

// Config returns the strategy config this evaluator was built with.
func (e *Evaluator) Config() types.StrategyConfig {
	return e.config
}

// Evaluate analyzes a bar series and returns a signal when the buy or sell
// conditions hold on the latest bar. Insufficient history is an expected
// no-signal outcome, not an error. Buy conditions are checked first so a
// misconfigured threshold set still yields at most one signal.
func (e *Evaluator) Evaluate(symbol string, bars types.BarSeries, timeframe string) optional.Option[types.TradingSignal] {
	if len(bars) < e.config.MinBars() {
		e.log.Debug("insufficient history for evaluation",
			zap.String("symbol", symbol),
			zap.String("timeframe", timeframe),
			zap.Int("bars", len(bars)),
			zap.Int("required", e.config.MinBars()),
		)

		return optional.None[types.TradingSignal]()
	}

	aug := indicator.CalculateAll(e.log, bars, indicator.ConfigFromStrategy(e.config))

	return e.evaluateAugmented(symbol, aug, timeframe)
}

func (e *Evaluator) evaluateAugmented(symbol string, aug *indicator.AugmentedSeries, timeframe string) optional.Option[types.TradingSignal] {
	latest := aug.Row(aug.Len() - 1)

	prev := latest
	if aug.Len() > 1 {
		prev = aug.Row(aug.Len() - 2)
	}

	if notes, ok := e.checkBuyConditions(latest, prev); ok {
		return optional.Some(e.buildSignal(symbol, timeframe, types.SideBuy, latest, notes))
	}

	if notes, ok := e.checkSellConditions(latest, prev); ok {
		return optional.Some(e.buildSignal(symbol, timeframe, types.SideSell, latest, notes))
	}

	return optional.None[types.TradingSignal]()
}

// checkBuyConditions requires a bullish stochastic crossover in oversold
// territory, an oversold CCI, an RSI above the free-fall floor, and volume
// confirmation.
func (e *Evaluator) checkBuyConditions(latest, prev indicator.Row) (string, bool) {
	stochOversold := indicator.IsDefined(latest.StochK) &&
		indicator.IsDefined(latest.StochD) &&
		latest.StochK < e.config.StochOversold &&
		latest.StochD < e.config.StochOversold &&
		latest.StochK > latest.StochD // K crossing above D

	cciOversold := indicator.IsDefined(latest.CCI) && latest.CCI < e.config.CCIOversold

	rsiOK := indicator.IsDefined(latest.RSI) && latest.RSI > rsiFloor

	if stochOversold && cciOversold && rsiOK && volumeConfirmed(latest, prev) {
		notes := fmt.Sprintf("stochastic oversold (%.1f), CCI oversold (%.1f)", latest.StochK, latest.CCI)

		return notes, true
	}

	return "", false
}

// checkSellConditions is the symmetric overbought check.
func (e *Evaluator) checkSellConditions(latest, prev indicator.Row) (string, bool) {
	stochOverbought := indicator.IsDefined(latest.StochK) &&
		indicator.IsDefined(latest.StochD) &&
		latest.StochK > e.config.StochOverbought &&
		latest.StochD > e.config.StochOverbought &&
		latest.StochK < latest.StochD // K crossing below D

	cciOverbought := indicator.IsDefined(latest.CCI) && latest.CCI > e.config.CCIOverbought

	rsiOK := indicator.IsDefined(latest.RSI) && latest.RSI < rsiCeiling

	if stochOverbought && cciOverbought && rsiOK && volumeConfirmed(latest, prev) {
		notes := fmt.Sprintf("stochastic overbought (%.1f), CCI overbought (%.1f)", latest.StochK, latest.CCI)

		return notes, true
	}

	return "", false
}

// volumeConfirmed passes when volume is absent on either bar; otherwise the
// latest bar must carry at least 80% of the previous bar's volume.
func volumeConfirmed(latest, prev indicator.Row) bool {
	if latest.Bar.Volume <= 0 || prev.Bar.Volume <= 0 {
		return true
	}

	return latest.Bar.Volume > prev.Bar.Volume*volumeConfirmationRatio
}

func (e *Evaluator) buildSignal(symbol, timeframe string, side types.Side, latest indicator.Row, notes string) types.TradingSignal {
	price := latest.Bar.Close

	var stopLoss, takeProfit float64

	if side == types.SideBuy {
		stopLoss = price * (1 - e.config.StopLossPercent/100)
		takeProfit = price * (1 + 2*e.config.StopLossPercent/100)
	} else {
		stopLoss = price * (1 + e.config.StopLossPercent/100)
		takeProfit = price * (1 - 2*e.config.StopLossPercent/100)
	}

	return types.NewTradingSignal(types.TradingSignal{
		Symbol:       symbol,
		Side:         side,
		Confidence:   signalConfidence,
		Price:        price,
		StopLoss:     stopLoss,
		TakeProfit:   takeProfit,
		Timeframe:    timeframe,
		StrategyName: e.config.Name,
		Indicators: map[string]float64{
			"stoch_k": latest.StochK,
			"stoch_d": latest.StochD,
			"cci":     latest.CCI,
			"rsi":     latest.RSI,
			"close":   latest.Bar.Close,
		},
		Notes: notes,
	})
}
