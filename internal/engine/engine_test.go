package engine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/alpatrade/alpatrade/internal/engine"
	"github.com/alpatrade/alpatrade/internal/logger"
	"github.com/alpatrade/alpatrade/internal/types"
	"github.com/alpatrade/alpatrade/mocks"
	"github.com/alpatrade/alpatrade/pkg/errors"
)

type EngineTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	data   *mocks.MockDataProvider
	broker *mocks.MockBroker
	engine *engine.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.data = mocks.NewMockDataProvider(s.ctrl)
	s.broker = mocks.NewMockBroker(s.ctrl)
	s.engine = engine.NewEngine(logger.NewNopLogger(), s.data, s.broker, engine.WithParallelism(2))
}

func (s *EngineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EngineTestSuite) addStrategy(name string) types.StrategyConfig {
	config := types.DefaultStrategyConfig(name)
	config.CapitalAllocationPercent = 10
	config.MaxPositions = 5

	s.Require().NoError(s.engine.AddStrategy(config))

	return config
}

func testSignal(strategyName string) types.TradingSignal {
	return types.NewTradingSignal(types.TradingSignal{
		Symbol:       "AAPL",
		Side:         types.SideBuy,
		Confidence:   0.7,
		Price:        50,
		StopLoss:     49,
		TakeProfit:   52,
		Timeframe:    "1D",
		StrategyName: strategyName,
	})
}

func healthyAccount() types.AccountInfo {
	return types.AccountInfo{Balance: 100000, Equity: 100000, BuyingPower: 100000}
}

func (s *EngineTestSuite) TestAddStrategyValidatesConfig() {
	config := types.DefaultStrategyConfig("")
	s.Error(s.engine.AddStrategy(config))
	s.Empty(s.engine.Strategies())

	s.addStrategy("stoch-cci")

	got, ok := s.engine.GetStrategy("stoch-cci")
	s.True(ok)
	s.Equal("stoch-cci", got.Name)
}

func (s *EngineTestSuite) TestRemoveStrategyIsIdempotent() {
	s.addStrategy("stoch-cci")

	s.engine.RemoveStrategy("stoch-cci")
	s.engine.RemoveStrategy("stoch-cci")
	s.engine.RemoveStrategy("never-registered")

	s.Empty(s.engine.Strategies())
}

func (s *EngineTestSuite) TestStrategiesSortedByName() {
	s.addStrategy("zeta")
	s.addStrategy("alpha")

	configs := s.engine.Strategies()
	s.Require().Len(configs, 2)
	s.Equal("alpha", configs[0].Name)
	s.Equal("zeta", configs[1].Name)
}

func (s *EngineTestSuite) TestScanWithoutActiveStrategiesFetchesNothing() {
	config := types.DefaultStrategyConfig("dormant")
	config.IsActive = false
	s.Require().NoError(s.engine.AddStrategy(config))

	// No GetHistoricalData expectation: any fetch would fail the test.
	signals, err := s.engine.Scan(context.Background(), []string{"AAPL"}, []string{"1D"})
	s.NoError(err)
	s.Empty(signals)
}

func (s *EngineTestSuite) TestScanSkipsFetchFailures() {
	s.addStrategy("stoch-cci")

	s.data.EXPECT().
		GetHistoricalData(gomock.Any(), "BAD", "1D", gomock.Any(), gomock.Any()).
		Return(nil, errors.New(errors.ErrCodeMarketDataFetchFailed, "venue down"))
	s.data.EXPECT().
		GetHistoricalData(gomock.Any(), "GOOD", "1D", gomock.Any(), gomock.Any()).
		Return(types.BarSeries{}, nil)

	signals, err := s.engine.Scan(context.Background(), []string{"BAD", "GOOD"}, []string{"1D"})
	s.NoError(err)
	s.Empty(signals)
}

func (s *EngineTestSuite) TestScanEvaluatesSyntheticSeries() {
	s.addStrategy("stoch-cci")

	bars := mocks.GenerateTrendingBars(200, -0.1)

	s.data.EXPECT().
		GetHistoricalData(gomock.Any(), "AAPL", "1H", gomock.Any(), gomock.Any()).
		Return(bars, nil)

	signals, err := s.engine.Scan(context.Background(), []string{"AAPL"}, []string{"1H"})
	s.NoError(err)

	// A signal needs a full condition confluence on the latest bar, so the
	// synthetic series may yield none; the scan itself must not fail.
	for _, signal := range signals {
		s.Equal("AAPL", signal.Symbol)
		s.Equal("stoch-cci", signal.StrategyName)
	}
}

func (s *EngineTestSuite) TestScanHonoursCancelledContext() {
	s.addStrategy("stoch-cci")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.engine.Scan(ctx, []string{"AAPL", "TSLA"}, []string{"1D", "1H"})
	s.ErrorIs(err, context.Canceled)
}

func (s *EngineTestSuite) TestAlertOnlyDispatchTouchesNoCollaborators() {
	s.addStrategy("stoch-cci")

	// No broker expectations: any call would fail the test.
	result := s.engine.Dispatch(context.Background(), testSignal("stoch-cci"), types.AutomationModeAlertOnly)

	s.Equal(types.ExecutionStatusAlert, result.Status)
	s.Contains(result.Message, "AAPL")
	s.Empty(s.engine.PendingSignals())
}

func (s *EngineTestSuite) TestAutoDispatchPlacesSizedOrder() {
	s.addStrategy("stoch-cci")

	s.broker.EXPECT().GetAccountInfo(gomock.Any()).Return(healthyAccount(), nil)
	s.broker.EXPECT().GetPositions(gomock.Any()).Return(nil, nil)

	var placed types.ExecuteOrder

	s.broker.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order types.ExecuteOrder) (types.OrderConfirmation, error) {
			placed = order

			return types.OrderConfirmation{
				OrderID:     "1",
				Symbol:      order.Symbol,
				Side:        order.Side,
				Quantity:    order.Quantity,
				FilledPrice: 50,
				Status:      types.OrderStatusFilled,
			}, nil
		})

	result := s.engine.Dispatch(context.Background(), testSignal("stoch-cci"), types.AutomationModeAuto)

	s.Equal(types.ExecutionStatusExecuted, result.Status)
	// 10% of 100000 equity at price 50 = 200 shares.
	s.Equal(int64(200), result.Quantity)
	s.True(result.Order.IsSome())

	s.Equal("AAPL", placed.Symbol)
	s.Equal(types.SideBuy, placed.Side)
	s.Equal(types.OrderTypeMarket, placed.OrderType)
	s.InDelta(200, placed.Quantity, 1e-9)
	s.Equal(types.OrderReasonSignal, placed.Reason.Reason)
}

func (s *EngineTestSuite) TestAutoDispatchRejectedByRiskCheck() {
	s.addStrategy("stoch-cci")

	account := healthyAccount()
	account.BuyingPower = 100

	s.broker.EXPECT().GetAccountInfo(gomock.Any()).Return(account, nil)
	s.broker.EXPECT().GetPositions(gomock.Any()).Return(nil, nil)
	// No PlaceOrder expectation: a rejected signal never reaches the broker.

	result := s.engine.Dispatch(context.Background(), testSignal("stoch-cci"), types.AutomationModeAuto)

	s.Equal(types.ExecutionStatusRejected, result.Status)
	s.Equal("insufficient buying power", result.Message)
}

func (s *EngineTestSuite) TestAutoDispatchSnapshotFailureRejects() {
	s.addStrategy("stoch-cci")

	s.broker.EXPECT().
		GetAccountInfo(gomock.Any()).
		Return(types.AccountInfo{}, errors.New(errors.ErrCodeAccountSnapshot, "venue down"))

	result := s.engine.Dispatch(context.Background(), testSignal("stoch-cci"), types.AutomationModeAuto)

	s.Equal(types.ExecutionStatusRejected, result.Status)
	s.Contains(result.Message, "account snapshot unavailable")
}

func (s *EngineTestSuite) TestAutoDispatchBrokerFailureIsError() {
	s.addStrategy("stoch-cci")

	s.broker.EXPECT().GetAccountInfo(gomock.Any()).Return(healthyAccount(), nil)
	s.broker.EXPECT().GetPositions(gomock.Any()).Return(nil, nil)
	s.broker.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any()).
		Return(types.OrderConfirmation{}, errors.New(errors.ErrCodeOrderFailed, "order rejected by venue"))

	result := s.engine.Dispatch(context.Background(), testSignal("stoch-cci"), types.AutomationModeAuto)

	s.Equal(types.ExecutionStatusError, result.Status)
	s.True(result.Order.IsNone())
}

func (s *EngineTestSuite) TestDispatchUnknownStrategyIsError() {
	result := s.engine.Dispatch(context.Background(), testSignal("ghost"), types.AutomationModeAuto)

	s.Equal(types.ExecutionStatusError, result.Status)
	s.Contains(result.Message, "ghost")
}

func (s *EngineTestSuite) TestDispatchUnknownModeIsError() {
	s.addStrategy("stoch-cci")

	result := s.engine.Dispatch(context.Background(), testSignal("stoch-cci"), types.AutomationMode("manual"))

	s.Equal(types.ExecutionStatusError, result.Status)
}

func (s *EngineTestSuite) TestSemiAutoConfirmFlow() {
	s.addStrategy("stoch-cci")

	// One snapshot for staging, one for the confirmed execution.
	s.broker.EXPECT().GetAccountInfo(gomock.Any()).Return(healthyAccount(), nil).Times(2)
	s.broker.EXPECT().GetPositions(gomock.Any()).Return(nil, nil).Times(2)

	signal := testSignal("stoch-cci")

	staged := s.engine.Dispatch(context.Background(), signal, types.AutomationModeSemiAuto)
	s.Require().Equal(types.ExecutionStatusPendingConfirmation, staged.Status)
	s.Equal(int64(200), staged.Quantity)

	pending := s.engine.PendingSignals()
	s.Require().Len(pending, 1)
	s.Equal(signal.ID, pending[0].Signal.ID)
	s.Equal(int64(200), pending[0].Quantity)

	s.broker.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order types.ExecuteOrder) (types.OrderConfirmation, error) {
			s.Equal(types.OrderReasonConfirmed, order.Reason.Reason)

			return types.OrderConfirmation{OrderID: "1", Status: types.OrderStatusFilled}, nil
		})

	result, err := s.engine.Confirm(context.Background(), signal.ID)
	s.Require().NoError(err)
	s.Equal(types.ExecutionStatusExecuted, result.Status)
	s.Equal(int64(200), result.Quantity)
	s.Empty(s.engine.PendingSignals())

	// A second confirm must fail: the signal is already resolved.
	_, err = s.engine.Confirm(context.Background(), signal.ID)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeSignalNotPending))
}

func (s *EngineTestSuite) TestRejectPendingSignal() {
	s.addStrategy("stoch-cci")

	s.broker.EXPECT().GetAccountInfo(gomock.Any()).Return(healthyAccount(), nil)
	s.broker.EXPECT().GetPositions(gomock.Any()).Return(nil, nil)

	signal := testSignal("stoch-cci")

	staged := s.engine.Dispatch(context.Background(), signal, types.AutomationModeSemiAuto)
	s.Require().Equal(types.ExecutionStatusPendingConfirmation, staged.Status)

	s.NoError(s.engine.Reject(signal.ID))
	s.Empty(s.engine.PendingSignals())

	err := s.engine.Reject(signal.ID)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeSignalNotPending))
}

func (s *EngineTestSuite) TestRegistryIsSafeForConcurrentUse() {
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()

			name := string(rune('a' + n))
			config := types.DefaultStrategyConfig(name)
			s.NoError(s.engine.AddStrategy(config))
			_ = s.engine.Strategies()
			_, _ = s.engine.GetStrategy(name)
		}(i)
	}

	wg.Wait()
	s.Len(s.engine.Strategies(), 8)
}
