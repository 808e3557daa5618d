package indicator

import (
	"math"

	"github.com/alpatrade/alpatrade/pkg/errors"
)

// CCI computes the Commodity Channel Index over the typical price
// (high+low+close)/3:
//
//	CCI = (TP - SMA(TP, period)) / (0.015 * meanAbsDeviation(TP, period))
//
// A window with zero deviation yields an undefined value.
func CCI(highs, lows, closes []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "cci period must be positive, got %d", period)
	}

	if len(highs) != len(lows) || len(lows) != len(closes) {
		return nil, errors.Newf(errors.ErrCodeSeriesLengthMismatch,
			"cci input lengths differ: high=%d low=%d close=%d", len(highs), len(lows), len(closes))
	}

	tp := make([]float64, len(closes))
	for i := range closes {
		tp[i] = (highs[i] + lows[i] + closes[i]) / 3.0
	}

	out := NewUndefinedSeries(len(closes))

	for i := period - 1; i < len(tp); i++ {
		mean := 0.0
		for j := i - period + 1; j <= i; j++ {
			mean += tp[j]
		}

		mean /= float64(period)

		deviation := 0.0
		for j := i - period + 1; j <= i; j++ {
			deviation += math.Abs(tp[j] - mean)
		}

		deviation /= float64(period)

		if deviation == 0 {
			continue
		}

		out[i] = (tp[i] - mean) / (0.015 * deviation)
	}

	return out, nil
}
