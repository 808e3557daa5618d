package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBollingerBandsSymmetry(t *testing.T) {
	values := []float64{20, 21, 22, 21, 20, 22, 23, 21, 20, 22, 24, 23, 22, 21, 20, 22, 23, 24, 22, 21, 23, 22}

	upper, middle, lower, err := BollingerBands(values, 20, 2.0)
	require.NoError(t, err)
	require.Len(t, upper, len(values))

	for i := 0; i < 19; i++ {
		assert.False(t, IsDefined(upper[i]))
		assert.False(t, IsDefined(middle[i]))
		assert.False(t, IsDefined(lower[i]))
	}

	for i := 19; i < len(values); i++ {
		assert.True(t, IsDefined(middle[i]))
		assert.InDelta(t, middle[i]-lower[i], upper[i]-middle[i], 1e-9)
		assert.GreaterOrEqual(t, upper[i], middle[i])
		assert.LessOrEqual(t, lower[i], middle[i])
	}
}

func TestBollingerBandsPopulationStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	upper, middle, lower, err := BollingerBands(values, 8, 1.0)
	require.NoError(t, err)

	// Mean 5, population sigma 2.
	assert.InDelta(t, 5.0, middle[7], 1e-9)
	assert.InDelta(t, 7.0, upper[7], 1e-9)
	assert.InDelta(t, 3.0, lower[7], 1e-9)
}

func TestMACDAlignment(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + float64(i)*0.5
	}

	macd, signal, hist, err := MACD(values, 12, 26, 9)
	require.NoError(t, err)
	require.Len(t, macd, len(values))
	require.Len(t, signal, len(values))
	require.Len(t, hist, len(values))

	// MACD line needs the slow EMA seed.
	for i := 0; i < 25; i++ {
		assert.False(t, IsDefined(macd[i]))
	}

	assert.True(t, IsDefined(macd[25]))

	// Signal line needs another signalPeriod-1 macd values.
	assert.False(t, IsDefined(signal[32]))
	assert.True(t, IsDefined(signal[33]))
	assert.True(t, IsDefined(hist[33]))
	assert.InDelta(t, macd[33]-signal[33], hist[33], 1e-9)
}

func TestMACDFastMustBeShorter(t *testing.T) {
	_, _, _, err := MACD([]float64{1, 2, 3}, 26, 12, 9)
	assert.Error(t, err)
}
