// Package market defines the market-data collaborator contract and its
// Binance and Polygon implementations.
package market

import (
	"context"
	"time"

	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderBinance ProviderType = "binance"
	ProviderPolygon ProviderType = "polygon"
)

// DataProvider fetches historical bar series from an external venue.
type DataProvider interface {
	// GetHistoricalData returns the bars for symbol and timeframe within
	// [start, end]. An empty series means no data was available; callers
	// treat that as "skip", not as a failure.
	GetHistoricalData(ctx context.Context, symbol, timeframe string, start, end time.Time) (types.BarSeries, error)
}

// NewDataProvider creates a market data provider based on the provider type.
func NewDataProvider(providerType ProviderType, config any) (DataProvider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceDataProvider(), nil
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon provider requires API key string config")
		}

		return NewPolygonDataProvider(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
