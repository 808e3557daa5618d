package indicator

import (
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// SMA computes the arithmetic mean over a trailing window of length period.
// The first period-1 positions are undefined; windows containing undefined
// inputs stay undefined.
func SMA(values []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "sma period must be positive, got %d", period)
	}

	out := NewUndefinedSeries(len(values))

	for i := period - 1; i < len(values); i++ {
		if !windowDefined(values, i-period+1, i+1) {
			continue
		}

		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}

		out[i] = sum / float64(period)
	}

	return out, nil
}

// EMA computes an exponentially weighted mean with smoothing 2/(period+1).
// The recursion is seeded at the end of the first full window with the SMA of
// that window, so the first period-1 positions are undefined like every other
// rolling transform here. Leading undefined inputs shift the seed forward.
func EMA(values []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ema period must be positive, got %d", period)
	}

	out := NewUndefinedSeries(len(values))
	alpha := 2.0 / (float64(period) + 1.0)

	seeded := false
	prev := 0.0
	count := 0
	sum := 0.0

	for i, v := range values {
		if !IsDefined(v) {
			// Undefined input resets the seed window.
			seeded = false
			count = 0
			sum = 0

			continue
		}

		if !seeded {
			count++
			sum += v

			if count == period {
				prev = sum / float64(period)
				out[i] = prev
				seeded = true
			}

			continue
		}

		prev = alpha*v + (1-alpha)*prev
		out[i] = prev
	}

	return out, nil
}

// WMA computes a linearly weighted mean with weights 1..period over the
// trailing window.
func WMA(values []float64, period int) (Series, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "wma period must be positive, got %d", period)
	}

	out := NewUndefinedSeries(len(values))
	weightSum := float64(period*(period+1)) / 2.0

	for i := period - 1; i < len(values); i++ {
		if !windowDefined(values, i-period+1, i+1) {
			continue
		}

		weighted := 0.0
		for j := 0; j < period; j++ {
			weighted += float64(j+1) * values[i-period+1+j]
		}

		out[i] = weighted / weightSum
	}

	return out, nil
}
