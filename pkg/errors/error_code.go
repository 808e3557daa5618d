package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidExecuteOrder  ErrorCode = 102
	ErrCodeInvalidOrder         ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeInvalidMultiplier    ErrorCode = 105
	ErrCodeInvalidTimeframe     ErrorCode = 106
	ErrCodeInvalidSignal        ErrorCode = 107

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound         ErrorCode = 200
	ErrCodeHistoricalDataFailed ErrorCode = 201
	ErrCodeEmptyBarSeries       ErrorCode = 202
	ErrCodeUnorderedBarSeries   ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300
	ErrCodeSeriesLengthMismatch ErrorCode = 301

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound    ErrorCode = 400
	ErrCodeStrategyConfigError ErrorCode = 401

	// Risk errors (500-599)
	ErrCodeRiskCheckFailed ErrorCode = 500
	ErrCodeAccountSnapshot ErrorCode = 501

	// Execution errors (600-699)
	ErrCodeOrderFailed        ErrorCode = 600
	ErrCodeSignalNotPending   ErrorCode = 601
	ErrCodeSignalAlreadyFinal ErrorCode = 602

	// Provider errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeInvalidProvider       ErrorCode = 702
	ErrCodeBrokerUnavailable     ErrorCode = 703
)
