// Package engine orchestrates registered strategies: scanning watchlists
// for signals and routing signals to alerting or order execution.
package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alpatrade/alpatrade/internal/broker"
	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/market"
	"github.com/alpatrade/alpatrade/internal/risk"
	"github.com/alpatrade/alpatrade/internal/strategy"
	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
	"github.com/alpatrade/alpatrade/pkg/utils"
)

const (
	defaultParallelism = 4
	defaultLookback    = 365 * 24 * time.Hour
)

// strategyPair couples the evaluator and risk manager registered under one
// strategy name. Both are built from the same config, atomically.
type strategyPair struct {
	config    types.StrategyConfig
	evaluator *strategy.Evaluator
	risk      *risk.Manager
}

type pendingExecution struct {
	signal    types.TradingSignal
	quantity  int64
	createdAt time.Time
}

// PendingSignal is a staged semi-auto execution awaiting confirmation.
type PendingSignal struct {
	Signal    types.TradingSignal `json:"signal"`
	Quantity  int64               `json:"quantity"`
	CreatedAt time.Time           `json:"created_at"`
}

// Engine owns the strategy registry and the dispatch pipeline.
type Engine struct {
	log    *logger.Logger
	data   market.DataProvider
	broker broker.Broker

	mu         sync.RWMutex
	strategies map[string]*strategyPair

	pendingMu sync.Mutex
	pending   map[string]pendingExecution

	// dispatchMu serializes sizing, risk checks and order placement, so two
	// concurrent dispatches cannot both pass limits on the same account
	// snapshot.
	dispatchMu sync.Mutex

	parallelism int
	lookback    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism bounds the number of concurrent market-data fetches
// during a scan.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithLookback sets how far back historical data is fetched for evaluation.
func WithLookback(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.lookback = d
		}
	}
}

func NewEngine(log *logger.Logger, data market.DataProvider, brk broker.Broker, opts ...Option) *Engine {
	e := &Engine{
		log:         log.Named("engine"),
		data:        data,
		broker:      brk,
		strategies:  make(map[string]*strategyPair),
		pending:     make(map[string]pendingExecution),
		parallelism: defaultParallelism,
		lookback:    defaultLookback,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AddStrategy validates the config and registers its evaluator and risk
// manager under config.Name, replacing any previous registration.
func (e *Engine) AddStrategy(config types.StrategyConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	pair := &strategyPair{
		config:    config,
		evaluator: strategy.NewEvaluator(config, e.log.Named(config.Name)),
		risk:      risk.NewManager(config),
	}

	e.mu.Lock()
	e.strategies[config.Name] = pair
	e.mu.Unlock()

	e.log.Info("strategy registered",
		zap.String("strategy", config.Name),
		zap.Bool("active", config.IsActive),
		zap.String("default_mode", string(config.DefaultAutomationMode)),
	)

	return nil
}

// RemoveStrategy deregisters the named strategy. Removing an unknown name
// is a no-op.
func (e *Engine) RemoveStrategy(name string) {
	e.mu.Lock()
	delete(e.strategies, name)
	e.mu.Unlock()
}

// Strategies returns all registered configs sorted by name.
func (e *Engine) Strategies() []types.StrategyConfig {
	e.mu.RLock()
	configs := make([]types.StrategyConfig, 0, len(e.strategies))

	for _, pair := range e.strategies {
		configs = append(configs, pair.config)
	}
	e.mu.RUnlock()

	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })

	return configs
}

// GetStrategy returns the config registered under name.
func (e *Engine) GetStrategy(name string) (types.StrategyConfig, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pair, ok := e.strategies[name]
	if !ok {
		return types.StrategyConfig{}, false
	}

	return pair.config, true
}

// StrategyConfigSchema returns the JSON schema describing StrategyConfig,
// for config editors and API consumers.
func (e *Engine) StrategyConfigSchema() (string, error) {
	return utils.GetSchemaFromConfig(types.StrategyConfig{})
}

// activePairs snapshots the active strategies sorted by name, so scan
// results are deterministic.
func (e *Engine) activePairs() []*strategyPair {
	e.mu.RLock()
	pairs := make([]*strategyPair, 0, len(e.strategies))

	for _, pair := range e.strategies {
		if pair.config.IsActive {
			pairs = append(pairs, pair)
		}
	}
	e.mu.RUnlock()

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].config.Name < pairs[j].config.Name })

	return pairs
}

func (e *Engine) pair(name string) (*strategyPair, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pair, ok := e.strategies[name]

	return pair, ok
}

// Scan evaluates every active strategy against every symbol and timeframe.
// Fetch failures skip that pair and never abort the scan. The returned
// signals are sorted by symbol, timeframe and strategy name.
func (e *Engine) Scan(ctx context.Context, symbols, timeframes []string) ([]types.TradingSignal, error) {
	pairs := e.activePairs()
	if len(pairs) == 0 {
		return nil, nil
	}

	end := time.Now().UTC()
	start := end.Add(-e.lookback)

	var (
		resultMu sync.Mutex
		signals  []types.TradingSignal
	)

	g := new(errgroup.Group)
	g.SetLimit(e.parallelism)

	for _, symbol := range symbols {
		for _, timeframe := range timeframes {
			symbol, timeframe := symbol, timeframe
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}

				bars, err := e.data.GetHistoricalData(ctx, symbol, timeframe, start, end)
				if err != nil {
					e.log.Warn("market data fetch failed, skipping",
						zap.String("symbol", symbol),
						zap.String("timeframe", timeframe),
						zap.Error(err),
					)

					return nil
				}

				if len(bars) == 0 {
					return nil
				}

				for _, pair := range pairs {
					if result := pair.evaluator.Evaluate(symbol, bars, timeframe); result.IsSome() {
						resultMu.Lock()
						signals = append(signals, result.Unwrap())
						resultMu.Unlock()
					}
				}

				return nil
			})
		}
	}

	_ = g.Wait()

	sortSignals(signals)

	if err := ctx.Err(); err != nil {
		return signals, err
	}

	e.log.Info("scan complete",
		zap.Int("symbols", len(symbols)),
		zap.Int("timeframes", len(timeframes)),
		zap.Int("strategies", len(pairs)),
		zap.Int("signals", len(signals)),
	)

	return signals, nil
}

// sortSignals orders scan results by symbol, timeframe and strategy name,
// so concurrent scans over the same inputs always report the same order.
func sortSignals(signals []types.TradingSignal) {
	sort.Slice(signals, func(i, j int) bool {
		a, b := signals[i], signals[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}

		if a.Timeframe != b.Timeframe {
			return a.Timeframe < b.Timeframe
		}

		return a.StrategyName < b.StrategyName
	})
}

// AnalyzeSymbol evaluates every active strategy against one symbol and
// timeframe. Unlike Scan, a fetch failure is returned to the caller.
func (e *Engine) AnalyzeSymbol(ctx context.Context, symbol, timeframe string) ([]types.TradingSignal, error) {
	end := time.Now().UTC()

	bars, err := e.data.GetHistoricalData(ctx, symbol, timeframe, end.Add(-e.lookback), end)
	if err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no historical data for %s %s", symbol, timeframe)
	}

	var signals []types.TradingSignal

	for _, pair := range e.activePairs() {
		if result := pair.evaluator.Evaluate(symbol, bars, timeframe); result.IsSome() {
			signals = append(signals, result.Unwrap())
		}
	}

	return signals, nil
}
