package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// Dispatch routes a signal according to the automation mode. Alert-only
// dispatches touch no collaborators. Auto dispatches size, risk-check and
// place the order immediately. Semi-auto dispatches stage the sized order
// until Confirm or Reject resolves it.
func (e *Engine) Dispatch(ctx context.Context, signal types.TradingSignal, mode types.AutomationMode) types.ExecutionResult {
	switch mode {
	case types.AutomationModeAlertOnly:
		e.log.Info("signal alert",
			zap.String("symbol", signal.Symbol),
			zap.String("side", string(signal.Side)),
			zap.String("strategy", signal.StrategyName),
			zap.Float64("price", signal.Price),
		)

		return types.NewAlertResult(signal, fmt.Sprintf("%s %s at %.2f", signal.Side, signal.Symbol, signal.Price))
	case types.AutomationModeAuto:
		return e.executeSignal(ctx, signal, optional.None[int64]())
	case types.AutomationModeSemiAuto:
		return e.stagePending(ctx, signal)
	default:
		return types.NewErrorResult(signal, errors.Newf(errors.ErrCodeInvalidSignal, "unknown automation mode %q", mode))
	}
}

// executeSignal runs the full auto path: size (unless presized by a
// confirmation), risk-check against a fresh account snapshot, then place a
// market order. A failed snapshot rejects the signal; risk never passes on
// unknown state.
func (e *Engine) executeSignal(ctx context.Context, signal types.TradingSignal, presized optional.Option[int64]) types.ExecutionResult {
	e.dispatchMu.Lock()
	defer e.dispatchMu.Unlock()

	pair, ok := e.pair(signal.StrategyName)
	if !ok {
		return types.NewErrorResult(signal, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %q is not registered", signal.StrategyName))
	}

	account, err := e.broker.GetAccountInfo(ctx)
	if err != nil {
		return types.NewRejectedResult(signal, "account snapshot unavailable: "+err.Error())
	}

	quantity := presized.TakeOr(0)
	if presized.IsNone() {
		quantity = pair.risk.SizePosition(signal.Price, account.Equity)
	}

	positions, err := e.broker.GetPositions(ctx)
	if err != nil {
		return types.NewRejectedResult(signal, "positions unavailable: "+err.Error())
	}

	allowed, reason := pair.risk.CheckLimits(signal.Symbol, signal.Side, quantity, signal.Price, positions, account)
	if !allowed {
		e.log.Info("signal rejected by risk checks",
			zap.String("symbol", signal.Symbol),
			zap.String("strategy", signal.StrategyName),
			zap.String("reason", reason),
		)

		return types.NewRejectedResult(signal, reason)
	}

	orderReason := types.OrderReasonSignal
	if presized.IsSome() {
		orderReason = types.OrderReasonConfirmed
	}

	order := types.ExecuteOrder{
		ID:           uuid.NewString(),
		Symbol:       signal.Symbol,
		Side:         signal.Side,
		OrderType:    types.OrderTypeMarket,
		Quantity:     float64(quantity),
		Reason:       types.Reason{Reason: orderReason, Message: signal.Notes},
		StrategyName: signal.StrategyName,
	}

	confirmation, err := e.broker.PlaceOrder(ctx, order)
	if err != nil {
		e.log.Error("order placement failed",
			zap.String("symbol", signal.Symbol),
			zap.String("strategy", signal.StrategyName),
			zap.Error(err),
		)

		return types.NewErrorResult(signal, err)
	}

	return types.NewExecutedResult(signal, quantity, confirmation)
}

// stagePending sizes and risk-checks the signal, then parks it until
// Confirm or Reject.
func (e *Engine) stagePending(ctx context.Context, signal types.TradingSignal) types.ExecutionResult {
	e.dispatchMu.Lock()
	defer e.dispatchMu.Unlock()

	pair, ok := e.pair(signal.StrategyName)
	if !ok {
		return types.NewErrorResult(signal, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %q is not registered", signal.StrategyName))
	}

	account, err := e.broker.GetAccountInfo(ctx)
	if err != nil {
		return types.NewRejectedResult(signal, "account snapshot unavailable: "+err.Error())
	}

	quantity := pair.risk.SizePosition(signal.Price, account.Equity)

	positions, err := e.broker.GetPositions(ctx)
	if err != nil {
		return types.NewRejectedResult(signal, "positions unavailable: "+err.Error())
	}

	allowed, reason := pair.risk.CheckLimits(signal.Symbol, signal.Side, quantity, signal.Price, positions, account)
	if !allowed {
		return types.NewRejectedResult(signal, reason)
	}

	e.pendingMu.Lock()
	e.pending[signal.ID] = pendingExecution{
		signal:    signal,
		quantity:  quantity,
		createdAt: time.Now().UTC(),
	}
	e.pendingMu.Unlock()

	return types.NewPendingResult(signal, quantity,
		fmt.Sprintf("awaiting confirmation: %s %d %s at %.2f", signal.Side, quantity, signal.Symbol, signal.Price))
}

// Confirm resolves a pending semi-auto signal and re-enters the auto path
// with the already-sized quantity. Risk limits are re-checked against a
// fresh snapshot; market state may have moved since staging.
func (e *Engine) Confirm(ctx context.Context, signalID string) (types.ExecutionResult, error) {
	e.pendingMu.Lock()
	staged, ok := e.pending[signalID]
	if ok {
		delete(e.pending, signalID)
	}
	e.pendingMu.Unlock()

	if !ok {
		return types.ExecutionResult{}, errors.Newf(errors.ErrCodeSignalNotPending, "signal %s is not pending", signalID)
	}

	return e.executeSignal(ctx, staged.signal, optional.Some(staged.quantity)), nil
}

// Reject discards a pending semi-auto signal without placing an order.
func (e *Engine) Reject(signalID string) error {
	e.pendingMu.Lock()
	defer e.pendingMu.Unlock()

	if _, ok := e.pending[signalID]; !ok {
		return errors.Newf(errors.ErrCodeSignalNotPending, "signal %s is not pending", signalID)
	}

	delete(e.pending, signalID)

	return nil
}

// PendingSignals returns the staged semi-auto executions, oldest first.
func (e *Engine) PendingSignals() []PendingSignal {
	e.pendingMu.Lock()
	staged := make([]PendingSignal, 0, len(e.pending))

	for _, p := range e.pending {
		staged = append(staged, PendingSignal{
			Signal:    p.signal,
			Quantity:  p.quantity,
			CreatedAt: p.createdAt,
		})
	}
	e.pendingMu.Unlock()

	sort.Slice(staged, func(i, j int) bool {
		if !staged[i].CreatedAt.Equal(staged[j].CreatedAt) {
			return staged[i].CreatedAt.Before(staged[j].CreatedAt)
		}

		return staged[i].Signal.ID < staged[j].Signal.ID
	})

	return staged
}
