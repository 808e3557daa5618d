package types

import (
	"github.com/go-playground/validator/v10"

	"github.com/alpatrade/alpatrade/pkg/errors"
)

// AutomationMode governs what happens to a signal produced by a strategy:
// alert only, pending manual confirmation, or immediate order placement.
type AutomationMode string

const (
	AutomationModeAlertOnly AutomationMode = "alert_only"
	AutomationModeSemiAuto  AutomationMode = "semi_auto"
	AutomationModeAuto      AutomationMode = "auto"
)

// StrategyConfig is the immutable configuration for one registered strategy.
// A config registers one evaluator and one risk manager under Name.
type StrategyConfig struct {
	Name     string `yaml:"name" json:"name" jsonschema:"title=Name,description=Unique strategy name" validate:"required"`
	IsActive bool   `yaml:"is_active" json:"is_active" jsonschema:"title=Active"`

	// Indicator periods
	StochKPeriod int `yaml:"stoch_k_period" json:"stoch_k_period" validate:"gt=0"`
	StochDPeriod int `yaml:"stoch_d_period" json:"stoch_d_period" validate:"gt=0"`
	CCIPeriod    int `yaml:"cci_period" json:"cci_period" validate:"gt=0"`
	RSIPeriod    int `yaml:"rsi_period" json:"rsi_period" validate:"gt=0"`
	MAPeriod     int `yaml:"ma_period" json:"ma_period" validate:"gt=0"`
	BBPeriod     int `yaml:"bb_period" json:"bb_period" validate:"gt=0"`
	MACDFast     int `yaml:"macd_fast" json:"macd_fast" validate:"gt=0"`
	MACDSlow     int `yaml:"macd_slow" json:"macd_slow" validate:"gt=0"`
	MACDSignal   int `yaml:"macd_signal" json:"macd_signal" validate:"gt=0"`

	// Band multiplier for Bollinger Bands
	BBStdDev float64 `yaml:"bb_std_dev" json:"bb_std_dev" validate:"gt=0"`

	// Oscillator thresholds
	StochOversold   float64 `yaml:"stoch_oversold" json:"stoch_oversold" validate:"gte=0,lte=100"`
	StochOverbought float64 `yaml:"stoch_overbought" json:"stoch_overbought" validate:"gte=0,lte=100"`
	CCIOversold     float64 `yaml:"cci_oversold" json:"cci_oversold" validate:"lt=0"`
	CCIOverbought   float64 `yaml:"cci_overbought" json:"cci_overbought" validate:"gt=0"`

	// Risk parameters
	StopLossPercent          float64 `yaml:"stop_loss_percent" json:"stop_loss_percent" validate:"gt=0,lt=100"`
	CapitalAllocationPercent float64 `yaml:"capital_allocation_percent" json:"capital_allocation_percent" validate:"gt=0,lte=100"`
	MaxPositions             int     `yaml:"max_positions" json:"max_positions" validate:"gt=0"`

	DefaultAutomationMode AutomationMode `yaml:"default_automation_mode" json:"default_automation_mode" validate:"required,oneof=alert_only semi_auto auto"`
}

// DefaultStrategyConfig returns a config with the standard periods and
// thresholds for the stochastic/CCI rule set.
func DefaultStrategyConfig(name string) StrategyConfig {
	return StrategyConfig{
		Name:                     name,
		IsActive:                 true,
		StochKPeriod:             14,
		StochDPeriod:             3,
		CCIPeriod:                20,
		RSIPeriod:                14,
		MAPeriod:                 20,
		BBPeriod:                 20,
		MACDFast:                 12,
		MACDSlow:                 26,
		MACDSignal:               9,
		BBStdDev:                 2.0,
		StochOversold:            20,
		StochOverbought:          80,
		CCIOversold:              -100,
		CCIOverbought:            100,
		StopLossPercent:          2.0,
		CapitalAllocationPercent: 10,
		MaxPositions:             5,
		DefaultAutomationMode:    AutomationModeAlertOnly,
	}
}

// Validate validates the StrategyConfig struct.
func (c *StrategyConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy config", err)
	}

	return nil
}

// MinBars is the minimum series length the evaluator needs before it will
// consider a signal. Shorter series are an expected no-signal outcome.
func (c *StrategyConfig) MinBars() int {
	longest := c.StochKPeriod
	if c.CCIPeriod > longest {
		longest = c.CCIPeriod
	}

	return longest + 10
}
