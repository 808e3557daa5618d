package broker

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

// BinanceBrokerConfig holds the credentials for the Binance spot account.
type BinanceBrokerConfig struct {
	APIKey    string `json:"api_key" yaml:"api_key" validate:"required"`
	SecretKey string `json:"secret_key" yaml:"secret_key" validate:"required"`
	// QuoteAsset is the cash asset positions are quoted in, e.g. USDT.
	QuoteAsset string `json:"quote_asset" yaml:"quote_asset" validate:"required"`
}

func (c BinanceBrokerConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance broker config", err)
	}

	return nil
}

// BinanceBroker executes orders against the Binance spot API.
type BinanceBroker struct {
	client BinanceClient
	config BinanceBrokerConfig
	log    *logger.Logger
}

func NewBinanceBroker(config BinanceBrokerConfig, log *logger.Logger) (*BinanceBroker, error) {
	if config.QuoteAsset == "" {
		config.QuoteAsset = "USDT"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &BinanceBroker{
		client: newRealBinanceClient(config.APIKey, config.SecretKey),
		config: config,
		log:    log.Named("binance"),
	}, nil
}

func (b *BinanceBroker) PlaceOrder(ctx context.Context, order types.ExecuteOrder) (types.OrderConfirmation, error) {
	if err := order.Validate(); err != nil {
		return types.OrderConfirmation{}, err
	}

	side := binance.SideTypeBuy
	if order.Side == types.SideSell {
		side = binance.SideTypeSell
	}

	service := b.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(side).
		Quantity(strconv.FormatFloat(order.Quantity, 'f', -1, 64))

	switch order.OrderType {
	case types.OrderTypeLimit:
		price, err := order.Price.Take()
		if err != nil {
			return types.OrderConfirmation{}, errors.New(errors.ErrCodeInvalidExecuteOrder, "limit order requires a price")
		}

		service = service.
			Type(binance.OrderTypeLimit).
			Price(strconv.FormatFloat(price, 'f', -1, 64)).
			TimeInForce(binance.TimeInForceTypeGTC)
	default:
		service = service.Type(binance.OrderTypeMarket)
	}

	resp, err := service.Do(ctx)
	if err != nil {
		return types.OrderConfirmation{}, errors.Wrapf(errors.ErrCodeOrderFailed, err, "failed to place %s order for %s", order.Side, order.Symbol)
	}

	b.log.Info("order placed",
		zap.String("symbol", order.Symbol),
		zap.String("side", string(order.Side)),
		zap.Int64("binance_order_id", resp.OrderID),
		zap.String("status", string(resp.Status)),
	)

	return types.OrderConfirmation{
		OrderID:     strconv.FormatInt(resp.OrderID, 10),
		Symbol:      resp.Symbol,
		Side:        order.Side,
		Quantity:    order.Quantity,
		FilledPrice: filledPrice(resp),
		Status:      mapOrderStatus(resp.Status),
		SubmittedAt: time.UnixMilli(resp.TransactTime).UTC(),
	}, nil
}

func (b *BinanceBroker) GetAccountInfo(ctx context.Context) (types.AccountInfo, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return types.AccountInfo{}, errors.Wrap(errors.ErrCodeAccountSnapshot, "failed to fetch binance account", err)
	}

	var free, locked float64

	for _, balance := range account.Balances {
		if balance.Asset != b.config.QuoteAsset {
			continue
		}

		free, err = strconv.ParseFloat(balance.Free, 64)
		if err != nil {
			return types.AccountInfo{}, errors.Wrap(errors.ErrCodeAccountSnapshot, "failed to parse free balance", err)
		}

		locked, err = strconv.ParseFloat(balance.Locked, 64)
		if err != nil {
			return types.AccountInfo{}, errors.Wrap(errors.ErrCodeAccountSnapshot, "failed to parse locked balance", err)
		}

		break
	}

	// Equity counts quote-asset cash only; open spot positions are not
	// marked to market here.
	return types.AccountInfo{
		Balance:     free + locked,
		Equity:      free + locked,
		BuyingPower: free,
	}, nil
}

func (b *BinanceBroker) GetPositions(ctx context.Context) ([]types.Position, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAccountSnapshot, "failed to fetch binance account", err)
	}

	var positions []types.Position

	for _, balance := range account.Balances {
		if balance.Asset == b.config.QuoteAsset {
			continue
		}

		free, err := strconv.ParseFloat(balance.Free, 64)
		if err != nil {
			continue
		}

		locked, err := strconv.ParseFloat(balance.Locked, 64)
		if err != nil {
			continue
		}

		quantity := free + locked
		if quantity <= 0 {
			continue
		}

		positions = append(positions, types.Position{
			Symbol:   balance.Asset + b.config.QuoteAsset,
			Quantity: quantity,
		})
	}

	return positions, nil
}

func filledPrice(resp *binance.CreateOrderResponse) float64 {
	if price, err := strconv.ParseFloat(resp.Price, 64); err == nil && price > 0 {
		return price
	}

	// Market orders report price 0; use the first fill instead.
	if len(resp.Fills) > 0 {
		if price, err := strconv.ParseFloat(resp.Fills[0].Price, 64); err == nil {
			return price
		}
	}

	return 0
}

func mapOrderStatus(status binance.OrderStatusType) types.OrderStatus {
	switch {
	case status == binance.OrderStatusTypeFilled:
		return types.OrderStatusFilled
	case status == binance.OrderStatusTypeCanceled:
		return types.OrderStatusCancelled
	case status == binance.OrderStatusTypeRejected || status == binance.OrderStatusTypeExpired:
		return types.OrderStatusRejected
	case strings.HasPrefix(string(status), "PENDING"):
		return types.OrderStatusPending
	default:
		return types.OrderStatusPending
	}
}
