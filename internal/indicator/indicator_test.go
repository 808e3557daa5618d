package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/types"
)

func testBars(n int) types.BarSeries {
	bars := make(types.BarSeries, n)
	start := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		base := 100 + 3*math.Sin(float64(i)/5)
		bars[i] = types.Bar{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   base,
			High:   base + 1,
			Low:    base - 1,
			Close:  base + 0.3*math.Cos(float64(i)),
			Volume: 10000 + float64(i)*10,
		}
	}

	return bars
}

func TestCalculateAllAlignment(t *testing.T) {
	bars := testBars(80)

	aug := CalculateAll(logger.NewNopLogger(), bars, DefaultConfig())

	require.Equal(t, len(bars), aug.Len())
	assert.Len(t, aug.StochK, len(bars))
	assert.Len(t, aug.CCI, len(bars))
	assert.Len(t, aug.RSI, len(bars))
	assert.Len(t, aug.MACDHist, len(bars))

	assert.Greater(t, aug.StochK.DefinedCount(), 0)
	assert.Greater(t, aug.CCI.DefinedCount(), 0)
	assert.Greater(t, aug.RSI.DefinedCount(), 0)
	assert.Greater(t, aug.BBMiddle.DefinedCount(), 0)
	assert.Greater(t, aug.MACDSignal.DefinedCount(), 0)
}

func TestCalculateAllDegradesPerColumn(t *testing.T) {
	bars := testBars(80)

	cfg := DefaultConfig()
	cfg.CCIPeriod = 0 // invalid, must not abort the others

	aug := CalculateAll(logger.NewNopLogger(), bars, cfg)

	assert.Equal(t, 0, aug.CCI.DefinedCount())
	assert.Greater(t, aug.StochK.DefinedCount(), 0)
	assert.Greater(t, aug.RSI.DefinedCount(), 0)
	assert.Greater(t, aug.SMA.DefinedCount(), 0)
}

func TestRowSnapshot(t *testing.T) {
	bars := testBars(80)
	aug := CalculateAll(logger.NewNopLogger(), bars, DefaultConfig())

	last := aug.Row(aug.Len() - 1)
	assert.Equal(t, bars[len(bars)-1].Close, last.Bar.Close)
	assert.True(t, IsDefined(last.StochK))
	assert.True(t, IsDefined(last.RSI))

	first := aug.Row(0)
	assert.False(t, IsDefined(first.StochK))
	assert.False(t, IsDefined(first.RSI))
}
