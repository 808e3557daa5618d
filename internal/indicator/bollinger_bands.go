package indicator

import (
	"math"

	"github.com/alpatrade/alpatrade/pkg/errors"
)

// BollingerBands computes the middle band as SMA(values, period) and the
// upper/lower bands at stdDev population standard deviations around it.
// Population variance is used to stay consistent with the SMA-seeded EMA
// convention used across this package.
func BollingerBands(values []float64, period int, stdDev float64) (upper, middle, lower Series, err error) {
	if period <= 0 {
		return nil, nil, nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"bollinger period must be positive, got %d", period)
	}

	if stdDev <= 0 {
		return nil, nil, nil, errors.Newf(errors.ErrCodeInvalidMultiplier,
			"bollinger std dev multiplier must be positive, got %f", stdDev)
	}

	middle, err = SMA(values, period)
	if err != nil {
		return nil, nil, nil, err
	}

	upper = NewUndefinedSeries(len(values))
	lower = NewUndefinedSeries(len(values))

	for i := period - 1; i < len(values); i++ {
		if !IsDefined(middle[i]) {
			continue
		}

		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := values[j] - middle[i]
			variance += diff * diff
		}

		sigma := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + stdDev*sigma
		lower[i] = middle[i] - stdDev*sigma
	}

	return upper, middle, lower, nil
}
