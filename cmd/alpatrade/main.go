package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"

	"github.com/alpatrade/alpatrade/internal/broker"
	"github.com/alpatrade/alpatrade/internal/config"
	"github.com/alpatrade/alpatrade/internal/engine"
	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/market"
	"github.com/alpatrade/alpatrade/internal/sentiment"
	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/utils"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the YAML config file",
		Value:   "config.yaml",
	}
}

// buildEngine wires the provider, broker and strategies from config.
func buildEngine(cfg *config.Config) (*engine.Engine, *logger.Logger, error) {
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	provider, err := market.NewDataProvider(market.ProviderType(cfg.MarketData.Provider), cfg.MarketData.PolygonAPIKey)
	if err != nil {
		return nil, nil, err
	}

	var brk broker.Broker = broker.Unavailable{}

	if cfg.Broker.APIKey != "" {
		brk, err = broker.NewBinanceBroker(broker.BinanceBrokerConfig{
			APIKey:     cfg.Broker.APIKey,
			SecretKey:  cfg.Broker.SecretKey,
			QuoteAsset: cfg.Broker.QuoteAsset,
		}, log)
		if err != nil {
			return nil, nil, err
		}
	}

	eng := engine.NewEngine(log, provider, brk,
		engine.WithParallelism(cfg.ScanParallelism),
		engine.WithLookback(time.Duration(cfg.LookbackDays)*24*time.Hour),
	)

	for _, strategyConfig := range cfg.Strategies {
		if err := eng.AddStrategy(strategyConfig); err != nil {
			return nil, nil, err
		}
	}

	return eng, log, nil
}

func newLogger(level string) (*logger.Logger, error) {
	if level == "" {
		return logger.NewLogger()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return logger.NewLoggerWithLevel(parsed)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}

// scanAction runs one scan over the watchlist and dispatches each signal
// according to its strategy's default automation mode.
func scanAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	eng, log, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	signals, err := eng.Scan(ctx, cfg.Watchlist, cfg.Timeframes)
	if err != nil {
		return err
	}

	// No external sentiment feed on the CLI path: buy signals pass through
	// at the neutral score unless the configured threshold excludes them.
	signals = sentiment.FilterSignals(signals, nil, cfg.SentimentMinScore())

	results := make([]types.ExecutionResult, 0, len(signals))

	for _, signal := range signals {
		mode := types.AutomationModeAlertOnly
		if strategyConfig, ok := eng.GetStrategy(signal.StrategyName); ok {
			mode = strategyConfig.DefaultAutomationMode
		}

		results = append(results, eng.Dispatch(ctx, signal, mode))
	}

	return printJSON(results)
}

// analyzeAction evaluates all active strategies against one symbol.
func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	eng, log, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	signals, err := eng.AnalyzeSymbol(ctx, cmd.String("symbol"), cmd.String("timeframe"))
	if err != nil {
		return err
	}

	return printJSON(signals)
}

// schemaAction prints the JSON schema for strategy configs.
func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := utils.GetSchemaFromConfig(types.StrategyConfig{})
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "alpatrade",
		Usage: "Scan watchlists for stochastic/CCI signals and route them to alerting or execution",
		Commands: []*cli.Command{
			{
				Name:   "scan",
				Usage:  "Run one scan over the configured watchlist and dispatch signals",
				Flags:  []cli.Flag{configFlag()},
				Action: scanAction,
			},
			{
				Name:  "analyze",
				Usage: "Evaluate all active strategies against a single symbol",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "symbol",
						Aliases:  []string{"s"},
						Usage:    "Symbol to analyze",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "timeframe",
						Aliases: []string{"t"},
						Usage:   "Bar interval, e.g. 1H or 1D",
						Value:   "1D",
					},
				},
				Action: analyzeAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for strategy configs",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
