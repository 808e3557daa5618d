package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alpatrade/alpatrade/internal/types"
)

func TestBuySignalsFilteredByScore(t *testing.T) {
	signals := []types.TradingSignal{
		{Symbol: "AAPL", Side: types.SideBuy},
		{Symbol: "TSLA", Side: types.SideBuy},
	}

	scores := map[string]types.SentimentScore{
		"AAPL": {Score: 0.4, Label: types.SentimentLabelPositive},
		"TSLA": {Score: -0.6, Label: types.SentimentLabelNegative},
	}

	filtered := FilterSignals(signals, scores, DefaultMinScore)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "AAPL", filtered[0].Symbol)
}

func TestMissingSentimentDefaultsToNeutral(t *testing.T) {
	signals := []types.TradingSignal{{Symbol: "MSFT", Side: types.SideBuy}}

	filtered := FilterSignals(signals, map[string]types.SentimentScore{}, DefaultMinScore)

	// Neutral 0 passes the default -0.1 threshold.
	assert.Len(t, filtered, 1)
}

func TestSellSignalsAlwaysPass(t *testing.T) {
	signals := []types.TradingSignal{{Symbol: "TSLA", Side: types.SideSell}}

	scores := map[string]types.SentimentScore{
		"TSLA": {Score: -0.9, Label: types.SentimentLabelNegative},
	}

	filtered := FilterSignals(signals, scores, DefaultMinScore)
	assert.Len(t, filtered, 1)
}

func TestInputsNotMutated(t *testing.T) {
	signals := []types.TradingSignal{
		{Symbol: "AAPL", Side: types.SideBuy},
		{Symbol: "TSLA", Side: types.SideBuy},
	}

	scores := map[string]types.SentimentScore{
		"TSLA": {Score: -0.9},
	}

	_ = FilterSignals(signals, scores, DefaultMinScore)

	assert.Len(t, signals, 2)
	assert.Equal(t, "AAPL", signals[0].Symbol)
	assert.Equal(t, "TSLA", signals[1].Symbol)
}
