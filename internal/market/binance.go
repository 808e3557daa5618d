package market

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

const binanceKlineLimit = 1000

// BinanceDataProvider fetches historical klines from the Binance REST API.
// Public kline endpoints need no credentials.
type BinanceDataProvider struct {
	client *binance.Client
}

func NewBinanceDataProvider() *BinanceDataProvider {
	return &BinanceDataProvider{
		client: binance.NewClient("", ""),
	}
}

func (p *BinanceDataProvider) GetHistoricalData(ctx context.Context, symbol, timeframe string, start, end time.Time) (types.BarSeries, error) {
	tf, err := ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	interval := tf.BinanceInterval()
	startMs := start.UnixMilli()
	endMs := end.UnixMilli()

	var bars types.BarSeries

	// Binance caps each response at 1000 klines, so walk forward in pages
	// until the requested window is exhausted.
	for startMs < endMs {
		klines, err := p.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(startMs).
			EndTime(endMs).
			Limit(binanceKlineLimit).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s klines for %s", interval, symbol)
		}

		if len(klines) == 0 {
			break
		}

		for _, k := range klines {
			bar, err := barFromKline(k)
			if err != nil {
				return nil, err
			}

			bars = append(bars, bar)
		}

		last := klines[len(klines)-1]
		startMs = last.CloseTime + 1

		if len(klines) < binanceKlineLimit {
			break
		}
	}

	if err := bars.Validate(); err != nil {
		return nil, err
	}

	return bars, nil
}

func barFromKline(k *binance.Kline) (types.Bar, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return types.Bar{}, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to parse kline open price", err)
	}

	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return types.Bar{}, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to parse kline high price", err)
	}

	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return types.Bar{}, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to parse kline low price", err)
	}

	closePrice, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return types.Bar{}, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to parse kline close price", err)
	}

	volume, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return types.Bar{}, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to parse kline volume", err)
	}

	return types.Bar{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}
