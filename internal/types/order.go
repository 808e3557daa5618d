package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"

	"github.com/alpatrade/alpatrade/pkg/errors"
)

type OrderType string

type OrderStatus string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

const (
	OrderReasonSignal     string = "signal"
	OrderReasonConfirmed  string = "signal_confirmed"
	OrderReasonStopLoss   string = "stop_loss"
	OrderReasonTakeProfit string = "take_profit"
)

// Reason records why an order was submitted.
type Reason struct {
	Reason  string `yaml:"reason" json:"reason" validate:"required"`
	Message string `yaml:"message" json:"message" validate:"required"`
}

// ExecuteOrder is an order request handed to the brokerage collaborator.
type ExecuteOrder struct {
	ID           string    `yaml:"id" json:"id" validate:"required,uuid"`
	Symbol       string    `yaml:"symbol" json:"symbol" validate:"required"`
	Side         Side      `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	OrderType    OrderType `yaml:"order_type" json:"order_type" validate:"required,oneof=MARKET LIMIT"`
	Quantity     float64   `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	Reason       Reason    `yaml:"reason" json:"reason" validate:"required"`
	StrategyName string    `yaml:"strategy_name" json:"strategy_name" validate:"required"`
	// Price is the limit price. Not set for market orders.
	Price optional.Option[float64] `yaml:"price" json:"price"`
	// StopPrice is the trigger price for stop orders. Can be empty.
	StopPrice optional.Option[float64] `yaml:"stop_price" json:"stop_price"`
	// TrailPercent is the trailing stop distance in percent. Can be empty.
	TrailPercent optional.Option[float64] `yaml:"trail_percent" json:"trail_percent"`
}

// OrderConfirmation is the brokerage's acknowledgement of a placed order.
type OrderConfirmation struct {
	OrderID     string      `yaml:"order_id" json:"order_id"`
	Symbol      string      `yaml:"symbol" json:"symbol"`
	Side        Side        `yaml:"side" json:"side"`
	Quantity    float64     `yaml:"quantity" json:"quantity"`
	FilledPrice float64     `yaml:"filled_price" json:"filled_price"`
	Status      OrderStatus `yaml:"status" json:"status"`
	SubmittedAt time.Time   `yaml:"submitted_at" json:"submitted_at"`
}

// Validate validates the ExecuteOrder struct.
func (eo *ExecuteOrder) Validate() error {
	validate := validator.New()
	if err := validate.Struct(eo); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidExecuteOrder, "invalid execute order", err)
	}

	if eo.OrderType == OrderTypeLimit && eo.Price.IsNone() {
		return errors.New(errors.ErrCodeInvalidExecuteOrder, "limit order requires a price")
	}

	return nil
}
