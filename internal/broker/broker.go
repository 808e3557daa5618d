// Package broker defines the order-execution collaborator contract and
// its Binance implementation.
package broker

import (
	"context"

	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// Broker places orders and reports account state at an execution venue.
type Broker interface {
	// PlaceOrder submits the order and returns the venue's confirmation.
	PlaceOrder(ctx context.Context, order types.ExecuteOrder) (types.OrderConfirmation, error)

	// GetAccountInfo returns the current balance, equity and buying power.
	GetAccountInfo(ctx context.Context) (types.AccountInfo, error)

	// GetPositions returns all currently open positions.
	GetPositions(ctx context.Context) ([]types.Position, error)
}

// Unavailable is the broker used when no credentials are configured.
// Every call fails, so auto and semi-auto dispatches reject fail-closed
// while alert-only strategies keep working.
type Unavailable struct{}

func (Unavailable) PlaceOrder(context.Context, types.ExecuteOrder) (types.OrderConfirmation, error) {
	return types.OrderConfirmation{}, errors.New(errors.ErrCodeBrokerUnavailable, "no broker configured")
}

func (Unavailable) GetAccountInfo(context.Context) (types.AccountInfo, error) {
	return types.AccountInfo{}, errors.New(errors.ErrCodeBrokerUnavailable, "no broker configured")
}

func (Unavailable) GetPositions(context.Context) ([]types.Position, error) {
	return nil, errors.New(errors.ErrCodeBrokerUnavailable, "no broker configured")
}
