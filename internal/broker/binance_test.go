package broker

import (
	"context"
	"testing"

	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/types"
)

type fakeOrderService struct {
	symbol    string
	side      binance.SideType
	orderType binance.OrderType
	quantity  string
	price     string
	tif       binance.TimeInForceType

	resp *binance.CreateOrderResponse
	err  error
}

func (s *fakeOrderService) Symbol(symbol string) CreateOrderService { s.symbol = symbol; return s }
func (s *fakeOrderService) Side(side binance.SideType) CreateOrderService {
	s.side = side
	return s
}
func (s *fakeOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.orderType = orderType
	return s
}
func (s *fakeOrderService) Quantity(quantity string) CreateOrderService {
	s.quantity = quantity
	return s
}
func (s *fakeOrderService) Price(price string) CreateOrderService { s.price = price; return s }
func (s *fakeOrderService) TimeInForce(tif binance.TimeInForceType) CreateOrderService {
	s.tif = tif
	return s
}

func (s *fakeOrderService) Do(_ context.Context, _ ...binance.RequestOption) (*binance.CreateOrderResponse, error) {
	return s.resp, s.err
}

type fakeAccountService struct {
	account *binance.Account
	err     error
}

func (s *fakeAccountService) Do(_ context.Context, _ ...binance.RequestOption) (*binance.Account, error) {
	return s.account, s.err
}

type fakeClient struct {
	orders  *fakeOrderService
	account *fakeAccountService
}

func (c *fakeClient) NewCreateOrderService() CreateOrderService { return c.orders }
func (c *fakeClient) NewGetAccountService() GetAccountService   { return c.account }

func newTestBroker(client BinanceClient) *BinanceBroker {
	return &BinanceBroker{
		client: client,
		config: BinanceBrokerConfig{APIKey: "k", SecretKey: "s", QuoteAsset: "USDT"},
		log:    logger.NewNopLogger(),
	}
}

func marketOrder(side types.Side, quantity float64) types.ExecuteOrder {
	return types.ExecuteOrder{
		ID:           uuid.NewString(),
		Symbol:       "BTCUSDT",
		Side:         side,
		OrderType:    types.OrderTypeMarket,
		Quantity:     quantity,
		Reason:       types.Reason{Reason: types.OrderReasonSignal, Message: "entry"},
		StrategyName: "stoch-cci",
	}
}

func TestPlaceMarketOrder(t *testing.T) {
	orders := &fakeOrderService{
		resp: &binance.CreateOrderResponse{
			Symbol:       "BTCUSDT",
			OrderID:      12345,
			TransactTime: 1710000000000,
			Price:        "0.00000000",
			Status:       binance.OrderStatusTypeFilled,
			Fills:        []*binance.Fill{{Price: "65000.5"}},
		},
	}
	b := newTestBroker(&fakeClient{orders: orders})

	conf, err := b.PlaceOrder(context.Background(), marketOrder(types.SideBuy, 2))
	require.NoError(t, err)

	assert.Equal(t, "12345", conf.OrderID)
	assert.Equal(t, types.OrderStatusFilled, conf.Status)
	assert.Equal(t, types.SideBuy, conf.Side)
	assert.InDelta(t, 65000.5, conf.FilledPrice, 1e-9)

	assert.Equal(t, "BTCUSDT", orders.symbol)
	assert.Equal(t, binance.SideTypeBuy, orders.side)
	assert.Equal(t, binance.OrderTypeMarket, orders.orderType)
	assert.Equal(t, "2", orders.quantity)
}

func TestPlaceLimitOrderRequiresPrice(t *testing.T) {
	b := newTestBroker(&fakeClient{orders: &fakeOrderService{}})

	order := marketOrder(types.SideSell, 1)
	order.OrderType = types.OrderTypeLimit

	_, err := b.PlaceOrder(context.Background(), order)
	assert.Error(t, err)
}

func TestGetAccountInfoParsesQuoteBalance(t *testing.T) {
	account := &fakeAccountService{
		account: &binance.Account{
			Balances: []binance.Balance{
				{Asset: "BTC", Free: "0.5", Locked: "0"},
				{Asset: "USDT", Free: "900.25", Locked: "99.75"},
			},
		},
	}
	b := newTestBroker(&fakeClient{account: account})

	info, err := b.GetAccountInfo(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 1000, info.Equity, 1e-9)
	assert.InDelta(t, 900.25, info.BuyingPower, 1e-9)
}

func TestGetPositionsSkipsQuoteAndDust(t *testing.T) {
	account := &fakeAccountService{
		account: &binance.Account{
			Balances: []binance.Balance{
				{Asset: "BTC", Free: "0.5", Locked: "0.1"},
				{Asset: "ETH", Free: "0", Locked: "0"},
				{Asset: "USDT", Free: "1000", Locked: "0"},
			},
		},
	}
	b := newTestBroker(&fakeClient{account: account})

	positions, err := b.GetPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 1)

	assert.Equal(t, "BTCUSDT", positions[0].Symbol)
	assert.InDelta(t, 0.6, positions[0].Quantity, 1e-9)
}
