package types

import "github.com/moznion/go-optional"

// ExecutionStatus is the discriminant of an ExecutionResult.
type ExecutionStatus string

const (
	// ExecutionStatusAlert means the signal was surfaced as an alert only.
	ExecutionStatusAlert ExecutionStatus = "alert"
	// ExecutionStatusRejected means a risk check failed. Terminal, fail-closed.
	ExecutionStatusRejected ExecutionStatus = "rejected"
	// ExecutionStatusExecuted means an order was placed and confirmed.
	ExecutionStatusExecuted ExecutionStatus = "executed"
	// ExecutionStatusPendingConfirmation means sizing and risk checks passed
	// and the order awaits an external confirm call.
	ExecutionStatusPendingConfirmation ExecutionStatus = "pending_confirmation"
	// ExecutionStatusError means the brokerage call failed. Never retried here.
	ExecutionStatusError ExecutionStatus = "error"
)

// ExecutionResult is the outcome of dispatching one trading signal.
type ExecutionResult struct {
	Status  ExecutionStatus `json:"status"`
	Message string          `json:"message"`
	Signal  TradingSignal   `json:"signal"`
	// Quantity is the sized share count. Set for pending and executed results.
	Quantity int64 `json:"quantity"`
	// Order is the brokerage confirmation. Set only for executed results.
	Order optional.Option[OrderConfirmation] `json:"order"`
}

// NewAlertResult builds an alert-only result.
func NewAlertResult(signal TradingSignal, message string) ExecutionResult {
	return ExecutionResult{
		Status:  ExecutionStatusAlert,
		Message: message,
		Signal:  signal,
	}
}

// NewRejectedResult builds a terminal rejection with the risk-check reason.
func NewRejectedResult(signal TradingSignal, reason string) ExecutionResult {
	return ExecutionResult{
		Status:  ExecutionStatusRejected,
		Message: reason,
		Signal:  signal,
	}
}

// NewExecutedResult builds a result carrying the order confirmation.
func NewExecutedResult(signal TradingSignal, quantity int64, confirmation OrderConfirmation) ExecutionResult {
	return ExecutionResult{
		Status:   ExecutionStatusExecuted,
		Message:  "order placed",
		Signal:   signal,
		Quantity: quantity,
		Order:    optional.Some(confirmation),
	}
}

// NewPendingResult builds a result awaiting manual confirmation.
func NewPendingResult(signal TradingSignal, quantity int64, message string) ExecutionResult {
	return ExecutionResult{
		Status:   ExecutionStatusPendingConfirmation,
		Message:  message,
		Signal:   signal,
		Quantity: quantity,
	}
}

// NewErrorResult builds a result for a failed brokerage call.
func NewErrorResult(signal TradingSignal, err error) ExecutionResult {
	return ExecutionResult{
		Status:  ExecutionStatusError,
		Message: err.Error(),
		Signal:  signal,
	}
}
