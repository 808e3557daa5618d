package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/polygon-io/client-go/rest/models"

	"github.com/alpatrade/alpatrade/pkg/errors"
)

// TimeframeUnit is the base unit of a bar interval.
type TimeframeUnit string

const (
	UnitMinute TimeframeUnit = "minute"
	UnitHour   TimeframeUnit = "hour"
	UnitDay    TimeframeUnit = "day"
)

// Timeframe is a parsed bar interval such as 15 minutes or 1 day.
type Timeframe struct {
	Multiplier int
	Unit       TimeframeUnit
}

// ParseTimeframe parses interval strings in either the broker style
// ("1Min", "15Min", "1H", "1D") or the exchange style ("1m", "4h", "1d").
func ParseTimeframe(s string) (Timeframe, error) {
	trimmed := strings.TrimSpace(s)

	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}

	if i == 0 || i == len(trimmed) {
		return Timeframe{}, errors.Newf(errors.ErrCodeInvalidTimeframe, "cannot parse timeframe %q", s)
	}

	multiplier, err := strconv.Atoi(trimmed[:i])
	if err != nil || multiplier <= 0 {
		return Timeframe{}, errors.Newf(errors.ErrCodeInvalidTimeframe, "invalid timeframe multiplier in %q", s)
	}

	var unit TimeframeUnit

	switch strings.ToLower(trimmed[i:]) {
	case "m", "min", "minute":
		unit = UnitMinute
	case "h", "hour":
		unit = UnitHour
	case "d", "day":
		unit = UnitDay
	default:
		return Timeframe{}, errors.Newf(errors.ErrCodeInvalidTimeframe, "unknown timeframe unit in %q", s)
	}

	return Timeframe{Multiplier: multiplier, Unit: unit}, nil
}

// Duration returns the wall-clock length of one bar.
func (t Timeframe) Duration() time.Duration {
	switch t.Unit {
	case UnitMinute:
		return time.Duration(t.Multiplier) * time.Minute
	case UnitHour:
		return time.Duration(t.Multiplier) * time.Hour
	default:
		return time.Duration(t.Multiplier) * 24 * time.Hour
	}
}

// BinanceInterval returns the kline interval string Binance expects.
func (t Timeframe) BinanceInterval() string {
	switch t.Unit {
	case UnitMinute:
		return fmt.Sprintf("%dm", t.Multiplier)
	case UnitHour:
		return fmt.Sprintf("%dh", t.Multiplier)
	default:
		return fmt.Sprintf("%dd", t.Multiplier)
	}
}

// PolygonTimespan returns the aggregate multiplier and timespan for Polygon.
func (t Timeframe) PolygonTimespan() (int, models.Timespan) {
	switch t.Unit {
	case UnitMinute:
		return t.Multiplier, models.Minute
	case UnitHour:
		return t.Multiplier, models.Hour
	default:
		return t.Multiplier, models.Day
	}
}
