package broker

import (
	"context"

	"github.com/adshao/go-binance/v2"
)

// CreateOrderService mirrors the chainable order builder of the Binance
// client so tests can substitute a fake without hitting the network.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Price(price string) CreateOrderService
	TimeInForce(tif binance.TimeInForceType) CreateOrderService
	Do(ctx context.Context, opts ...binance.RequestOption) (*binance.CreateOrderResponse, error)
}

// GetAccountService fetches the spot account snapshot.
type GetAccountService interface {
	Do(ctx context.Context, opts ...binance.RequestOption) (*binance.Account, error)
}

// BinanceClient is the subset of the Binance SDK the broker needs.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetAccountService() GetAccountService
}

type realBinanceClient struct {
	client *binance.Client
}

func newRealBinanceClient(apiKey, secretKey string) *realBinanceClient {
	return &realBinanceClient{client: binance.NewClient(apiKey, secretKey)}
}

func (c *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: c.client.NewCreateOrderService()}
}

func (c *realBinanceClient) NewGetAccountService() GetAccountService {
	return c.client.NewGetAccountService()
}

type realCreateOrderService struct {
	service *binance.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)
	return s
}

func (s *realCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.service = s.service.Side(side)
	return s
}

func (s *realCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)
	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)
	return s
}

func (s *realCreateOrderService) Price(price string) CreateOrderService {
	s.service = s.service.Price(price)
	return s
}

func (s *realCreateOrderService) TimeInForce(tif binance.TimeInForceType) CreateOrderService {
	s.service = s.service.TimeInForce(tif)
	return s
}

func (s *realCreateOrderService) Do(ctx context.Context, opts ...binance.RequestOption) (*binance.CreateOrderResponse, error) {
	return s.service.Do(ctx, opts...)
}
