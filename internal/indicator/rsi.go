package indicator

import (
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// RSI computes the Relative Strength Index using simple rolling means of the
// positive and negative price deltas (not Wilder smoothing):
//
//	RS  = avgGain / avgLoss
//	RSI = 100 - 100/(1+RS)
//
// When avgLoss is zero and avgGain is positive the value is 100. When both
// averages are zero the value is undefined. The first `period` positions are
// undefined because a delta needs two bars.
func RSI(closes []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "rsi period must be positive, got %d", period)
	}

	out := NewUndefinedSeries(len(closes))
	if len(closes) < 2 {
		return out, nil
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	for i := period; i < len(closes); i++ {
		avgGain := 0.0
		avgLoss := 0.0

		for j := i - period + 1; j <= i; j++ {
			avgGain += gains[j]
			avgLoss += losses[j]
		}

		avgGain /= float64(period)
		avgLoss /= float64(period)

		switch {
		case avgLoss == 0 && avgGain == 0:
			// No movement at all, RSI has no meaning.
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}

	return out, nil
}
