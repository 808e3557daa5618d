package types

import (
	"time"

	"github.com/alpatrade/alpatrade/pkg/errors"
)

// Bar is a single OHLCV bar for one time interval.
type Bar struct {
	Time   time.Time `json:"time" csv:"time"`
	Open   float64   `json:"open" csv:"open"`
	High   float64   `json:"high" csv:"high"`
	Low    float64   `json:"low" csv:"low"`
	Close  float64   `json:"close" csv:"close"`
	Volume float64   `json:"volume" csv:"volume"`
}

// BarSeries is an ordered sequence of bars for one symbol and timeframe.
// Timestamps must be strictly increasing with no duplicates.
type BarSeries []Bar

// Validate checks the ordering invariant of the series.
func (s BarSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return errors.Newf(errors.ErrCodeUnorderedBarSeries,
				"bar series timestamps must be strictly increasing: index %d (%s) does not follow index %d (%s)",
				i, s[i].Time, i-1, s[i-1].Time)
		}
	}

	return nil
}

// Closes returns the close price of every bar, aligned 1:1 with the series.
func (s BarSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}

	return out
}

// Highs returns the high price of every bar.
func (s BarSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High
	}

	return out
}

// Lows returns the low price of every bar.
func (s BarSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}

	return out
}

// Volumes returns the volume of every bar.
func (s BarSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}

	return out
}

// Last returns the most recent bar. The second return value is false when the
// series is empty.
func (s BarSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}

	return s[len(s)-1], true
}
