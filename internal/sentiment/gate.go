// Package sentiment implements the pure sentiment gate applied to signal
// lists. Sentiment scoring itself is an external collaborator; this package
// only consumes per-symbol scores.
package sentiment

import "github.com/alpatrade/alpatrade/internal/types"

// DefaultMinScore passes neutral and mildly negative sentiment. A symbol with
// no sentiment entry defaults to a neutral score of 0, which passes.
const DefaultMinScore = -0.1

// FilterSignals keeps BUY signals only when the symbol's sentiment score is at
// least minScore. SELL signals always pass. Inputs are never mutated.
func FilterSignals(signals []types.TradingSignal, scores map[string]types.SentimentScore, minScore float64) []types.TradingSignal {
	filtered := make([]types.TradingSignal, 0, len(signals))

	for _, signal := range signals {
		if signal.Side != types.SideBuy {
			filtered = append(filtered, signal)
			continue
		}

		score := 0.0
		if entry, ok := scores[signal.Symbol]; ok {
			score = entry.Score
		}

		if score >= minScore {
			filtered = append(filtered, signal)
		}
	}

	return filtered
}
