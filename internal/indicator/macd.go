package indicator

import (
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// MACD computes the Moving Average Convergence Divergence:
//
//	macd      = EMA(values, fast) - EMA(values, slow)
//	signal    = EMA(macd, signalPeriod)
//	histogram = macd - signal
//
// The macd line is undefined until the slow EMA is seeded; the signal line is
// undefined for another signalPeriod-1 positions after that.
func MACD(values []float64, fast, slow, signalPeriod int) (macd, signal, histogram Series, err error) {
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 {
		return nil, nil, nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"macd periods must be positive, got fast=%d slow=%d signal=%d", fast, slow, signalPeriod)
	}

	if fast >= slow {
		return nil, nil, nil, errors.Newf(errors.ErrCodeInvalidPeriod,
			"macd fast period must be shorter than slow period, got fast=%d slow=%d", fast, slow)
	}

	fastEMA, err := EMA(values, fast)
	if err != nil {
		return nil, nil, nil, err
	}

	slowEMA, err := EMA(values, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	macd = NewUndefinedSeries(len(values))
	for i := range values {
		if IsDefined(fastEMA[i]) && IsDefined(slowEMA[i]) {
			macd[i] = fastEMA[i] - slowEMA[i]
		}
	}

	signal, err = EMA(macd, signalPeriod)
	if err != nil {
		return nil, nil, nil, err
	}

	histogram = NewUndefinedSeries(len(values))
	for i := range values {
		if IsDefined(macd[i]) && IsDefined(signal[i]) {
			histogram[i] = macd[i] - signal[i]
		}
	}

	return macd, signal, histogram, nil
}
