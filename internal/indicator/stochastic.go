package indicator

import (
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// Stochastic computes the stochastic oscillator.
//
//	%K = 100 * (close - min(low, kPeriod)) / (max(high, kPeriod) - min(low, kPeriod))
//	%D = SMA(%K, dPeriod)
//
// A flat range (highest high equals lowest low) yields an undefined value at
// that position rather than an error.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (Series, Series, error) {
	if kPeriod <= 0 || dPeriod <= 0 {
		return nil, nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"stochastic periods must be positive, got k=%d d=%d", kPeriod, dPeriod)
	}

	if len(highs) != len(lows) || len(lows) != len(closes) {
		return nil, nil, errors.Newf(errors.ErrCodeSeriesLengthMismatch,
			"stochastic input lengths differ: high=%d low=%d close=%d", len(highs), len(lows), len(closes))
	}

	k := NewUndefinedSeries(len(closes))

	for i := kPeriod - 1; i < len(closes); i++ {
		lowest := lows[i]
		highest := highs[i]

		for j := i - kPeriod + 1; j <= i; j++ {
			if lows[j] < lowest {
				lowest = lows[j]
			}

			if highs[j] > highest {
				highest = highs[j]
			}
		}

		spread := highest - lowest
		if spread == 0 {
			// Flat range, %K has no meaning here.
			continue
		}

		k[i] = 100 * (closes[i] - lowest) / spread
	}

	d, err := SMA(k, dPeriod)
	if err != nil {
		return nil, nil, err
	}

	return k, d, nil
}
