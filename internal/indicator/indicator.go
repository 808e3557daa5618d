package indicator

import (
	"go.uber.org/zap"

	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/types"
)

// Config carries the periods for every indicator computed by CalculateAll.
type Config struct {
	StochKPeriod int
	StochDPeriod int
	CCIPeriod    int
	RSIPeriod    int
	MAPeriod     int
	BBPeriod     int
	BBStdDev     float64
	MACDFast     int
	MACDSlow     int
	MACDSignal   int
}

// DefaultConfig returns the standard indicator periods.
func DefaultConfig() Config {
	return Config{
		StochKPeriod: 14,
		StochDPeriod: 3,
		CCIPeriod:    20,
		RSIPeriod:    14,
		MAPeriod:     20,
		BBPeriod:     20,
		BBStdDev:     2.0,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
	}
}

// ConfigFromStrategy maps a strategy config onto indicator periods.
func ConfigFromStrategy(sc types.StrategyConfig) Config {
	return Config{
		StochKPeriod: sc.StochKPeriod,
		StochDPeriod: sc.StochDPeriod,
		CCIPeriod:    sc.CCIPeriod,
		RSIPeriod:    sc.RSIPeriod,
		MAPeriod:     sc.MAPeriod,
		BBPeriod:     sc.BBPeriod,
		BBStdDev:     sc.BBStdDev,
		MACDFast:     sc.MACDFast,
		MACDSlow:     sc.MACDSlow,
		MACDSignal:   sc.MACDSignal,
	}
}

// AugmentedSeries is a bar series with every indicator column aligned 1:1 to
// the bars. Columns for failed indicators stay fully undefined.
type AugmentedSeries struct {
	Bars types.BarSeries

	StochK     Series
	StochD     Series
	CCI        Series
	RSI        Series
	SMA        Series
	EMA        Series
	BBUpper    Series
	BBMiddle   Series
	BBLower    Series
	MACD       Series
	MACDSignal Series
	MACDHist   Series
}

// Len returns the number of bars.
func (a *AugmentedSeries) Len() int {
	return len(a.Bars)
}

// Row is the snapshot of one position of an augmented series.
type Row struct {
	Bar types.Bar

	StochK     float64
	StochD     float64
	CCI        float64
	RSI        float64
	SMA        float64
	EMA        float64
	BBUpper    float64
	BBMiddle   float64
	BBLower    float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64
}

// Row returns the snapshot at index i.
func (a *AugmentedSeries) Row(i int) Row {
	return Row{
		Bar:        a.Bars[i],
		StochK:     a.StochK.At(i),
		StochD:     a.StochD.At(i),
		CCI:        a.CCI.At(i),
		RSI:        a.RSI.At(i),
		SMA:        a.SMA.At(i),
		EMA:        a.EMA.At(i),
		BBUpper:    a.BBUpper.At(i),
		BBMiddle:   a.BBMiddle.At(i),
		BBLower:    a.BBLower.At(i),
		MACD:       a.MACD.At(i),
		MACDSignal: a.MACDSignal.At(i),
		MACDHist:   a.MACDHist.At(i),
	}
}

// CalculateAll applies every indicator to the bar series and returns one
// augmented series. A failure in a single indicator leaves only that column
// undefined; it is logged and never aborts the other columns.
func CalculateAll(log *logger.Logger, bars types.BarSeries, cfg Config) *AugmentedSeries {
	n := len(bars)
	highs := bars.Highs()
	lows := bars.Lows()
	closes := bars.Closes()

	out := &AugmentedSeries{
		Bars:       bars,
		StochK:     NewUndefinedSeries(n),
		StochD:     NewUndefinedSeries(n),
		CCI:        NewUndefinedSeries(n),
		RSI:        NewUndefinedSeries(n),
		SMA:        NewUndefinedSeries(n),
		EMA:        NewUndefinedSeries(n),
		BBUpper:    NewUndefinedSeries(n),
		BBMiddle:   NewUndefinedSeries(n),
		BBLower:    NewUndefinedSeries(n),
		MACD:       NewUndefinedSeries(n),
		MACDSignal: NewUndefinedSeries(n),
		MACDHist:   NewUndefinedSeries(n),
	}

	if k, d, err := Stochastic(highs, lows, closes, cfg.StochKPeriod, cfg.StochDPeriod); err != nil {
		log.Warn("stochastic calculation failed, column left undefined", zap.Error(err))
	} else {
		out.StochK = k
		out.StochD = d
	}

	if cci, err := CCI(highs, lows, closes, cfg.CCIPeriod); err != nil {
		log.Warn("cci calculation failed, column left undefined", zap.Error(err))
	} else {
		out.CCI = cci
	}

	if rsi, err := RSI(closes, cfg.RSIPeriod); err != nil {
		log.Warn("rsi calculation failed, column left undefined", zap.Error(err))
	} else {
		out.RSI = rsi
	}

	if sma, err := SMA(closes, cfg.MAPeriod); err != nil {
		log.Warn("sma calculation failed, column left undefined", zap.Error(err))
	} else {
		out.SMA = sma
	}

	if ema, err := EMA(closes, cfg.MAPeriod); err != nil {
		log.Warn("ema calculation failed, column left undefined", zap.Error(err))
	} else {
		out.EMA = ema
	}

	if upper, middle, lower, err := BollingerBands(closes, cfg.BBPeriod, cfg.BBStdDev); err != nil {
		log.Warn("bollinger bands calculation failed, columns left undefined", zap.Error(err))
	} else {
		out.BBUpper = upper
		out.BBMiddle = middle
		out.BBLower = lower
	}

	if macd, signal, hist, err := MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal); err != nil {
		log.Warn("macd calculation failed, columns left undefined", zap.Error(err))
	} else {
		out.MACD = macd
		out.MACDSignal = signal
		out.MACDHist = hist
	}

	return out
}
