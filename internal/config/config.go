// Package config loads and validates the application configuration.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/alpatrade/alpatrade/internal/market"
	"github.com/alpatrade/alpatrade/internal/sentiment"
	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

const (
	defaultLookbackDays    = 365
	defaultScanParallelism = 4
)

// MarketDataConfig selects and configures the historical data provider.
type MarketDataConfig struct {
	Provider      string `yaml:"provider" validate:"required,oneof=binance polygon"`
	PolygonAPIKey string `yaml:"polygon_api_key" validate:"required_if=Provider polygon"`
}

// BrokerConfig holds the execution venue credentials.
type BrokerConfig struct {
	APIKey     string `yaml:"api_key"`
	SecretKey  string `yaml:"secret_key"`
	QuoteAsset string `yaml:"quote_asset"`
}

// Config is the top-level application configuration.
type Config struct {
	LogLevel   string           `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	MarketData MarketDataConfig `yaml:"market_data"`
	Broker     BrokerConfig     `yaml:"broker"`

	Watchlist  []string `yaml:"watchlist" validate:"min=1,dive,required"`
	Timeframes []string `yaml:"timeframes" validate:"min=1,dive,required"`

	ScanParallelism int `yaml:"scan_parallelism" validate:"gte=0"`
	LookbackDays    int `yaml:"lookback_days" validate:"gte=0"`

	// MinSentimentScore gates buy signals; nil means the default threshold.
	MinSentimentScore *float64 `yaml:"min_sentiment_score" validate:"omitempty,gte=-1,lte=1"`

	Strategies []types.StrategyConfig `yaml:"strategies" validate:"min=1"`
}

// Load reads and parses the YAML config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read config file", err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML config document.
func Parse(data []byte) (*Config, error) {
	var config Config

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LookbackDays == 0 {
		c.LookbackDays = defaultLookbackDays
	}

	if c.ScanParallelism == 0 {
		c.ScanParallelism = defaultScanParallelism
	}
}

// SentimentMinScore returns the configured buy-gate threshold, or the
// default when omitted.
func (c *Config) SentimentMinScore() float64 {
	if c.MinSentimentScore == nil {
		return sentiment.DefaultMinScore
	}

	return *c.MinSentimentScore
}

// Validate checks field constraints, timeframe syntax and strategy
// uniqueness.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	for _, timeframe := range c.Timeframes {
		if _, err := market.ParseTimeframe(timeframe); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(c.Strategies))

	for i := range c.Strategies {
		strategy := &c.Strategies[i]

		if err := strategy.Validate(); err != nil {
			return err
		}

		if _, ok := seen[strategy.Name]; ok {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "duplicate strategy name %q", strategy.Name)
		}

		seen[strategy.Name] = struct{}{}
	}

	return nil
}
