package mocks

//go:generate mockgen -destination=./mock_market.go -package=mocks github.com/alpatrade/alpatrade/internal/market DataProvider
//go:generate mockgen -destination=./mock_broker.go -package=mocks github.com/alpatrade/alpatrade/internal/broker Broker
