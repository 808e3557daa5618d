// Package indicator implements stateless technical indicator transforms over
// aligned numeric series.
//
// Every transform returns a series aligned 1:1 with its input. Positions for
// which the rolling window is not yet full are undefined (IEEE NaN), which is
// distinct from a valid numeric zero. A failure in one indicator never affects
// another; CalculateAll degrades gracefully per column.
package indicator

import "math"

// Undefined returns the sentinel for positions with no computed value.
func Undefined() float64 {
	return math.NaN()
}

// IsDefined reports whether v carries a computed value.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// Series is a numeric series aligned with a bar series.
type Series []float64

// NewUndefinedSeries returns a series of length n with every position undefined.
func NewUndefinedSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}

	return s
}

// At returns the value at index i, or undefined when i is out of range.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return math.NaN()
	}

	return s[i]
}

// Last returns the most recent value, or undefined for an empty series.
func (s Series) Last() float64 {
	return s.At(len(s) - 1)
}

// DefinedCount returns the number of defined positions.
func (s Series) DefinedCount() int {
	count := 0

	for _, v := range s {
		if IsDefined(v) {
			count++
		}
	}

	return count
}

// windowDefined reports whether values[start:end] contains only defined values.
func windowDefined(values []float64, start, end int) bool {
	for i := start; i < end; i++ {
		if !IsDefined(values[i]) {
			return false
		}
	}

	return true
}
