package market

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// PolygonDataProvider fetches historical aggregates from the Polygon.io
// REST API, used for equities where Binance has no listing.
type PolygonDataProvider struct {
	client *polygon.Client
}

func NewPolygonDataProvider(apiKey string) (*PolygonDataProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon API key is required")
	}

	return &PolygonDataProvider{
		client: polygon.New(apiKey),
	}, nil
}

func (p *PolygonDataProvider) GetHistoricalData(ctx context.Context, symbol, timeframe string, start, end time.Time) (types.BarSeries, error) {
	tf, err := ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	multiplier, timespan := tf.PolygonTimespan()

	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithOrder(models.Asc).WithLimit(50000).WithAdjusted(true)

	var bars types.BarSeries

	iter := p.client.ListAggs(ctx, params)
	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.Bar{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch aggregates for %s", symbol)
	}

	if err := bars.Validate(); err != nil {
		return nil, err
	}

	return bars, nil
}
