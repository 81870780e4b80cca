package engine

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/mocks"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SimulatorTestSuite struct {
	suite.Suite
	arena *arena.Arena
}

func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorTestSuite))
}

func (suite *SimulatorTestSuite) SetupTest() {
	suite.arena = arena.New(0)
}

func closeOperand() types.Operand {
	return types.PriceOperand(types.PriceFieldClose)
}

func never() *types.Rule {
	return types.Above(closeOperand(), types.ConstantOperand(math.MaxFloat64))
}

func (suite *SimulatorTestSuite) run(strategy types.Strategy, options SimulatorOptions, bars []types.Bar) (*types.Portfolio, error) {
	simulator, err := NewSimulator(strategy, options)
	suite.Require().NoError(err)

	return simulator.Run(suite.arena, bars)
}

func (suite *SimulatorTestSuite) TestLongEntryAndStrategyExit() {
	strategy := types.Strategy{
		Name:         "threshold",
		EntryLong:    types.Below(closeOperand(), types.ConstantOperand(101)),
		ExitLong:     types.Above(closeOperand(), types.ConstantOperand(119)),
		PositionSize: 0.5,
	}

	portfolio, err := suite.run(strategy, SimulatorOptions{InitialCapital: 100000, Costs: noCosts()}, testBars("AAPL", 100, 110, 120, 130))
	suite.Require().NoError(err)

	suite.Require().Len(portfolio.Trades, 1)
	trade := portfolio.Trades[0]
	suite.Equal(500.0, trade.Quantity)
	suite.Equal(100.0, trade.EntryPrice)
	suite.Equal(120.0, trade.ExitPrice)
	suite.Equal(10000.0, trade.PnL)
	suite.Equal(types.ExitReasonStrategy, trade.ExitReason)
	suite.Equal(110000.0, portfolio.Cash)
	suite.Equal(0, portfolio.OpenPositions())

	equity := make([]float64, len(portfolio.EquityCurve))
	for i, point := range portfolio.EquityCurve {
		equity[i] = point.Equity
	}

	suite.Equal([]float64{100000, 105000, 110000, 110000}, equity)
}

func (suite *SimulatorTestSuite) TestStopLoss() {
	strategy := types.Strategy{
		EntryLong:    types.Equals(closeOperand(), types.ConstantOperand(100)),
		ExitLong:     never(),
		PositionSize: 1,
		StopLossPct:  5,
	}

	portfolio, err := suite.run(strategy, SimulatorOptions{InitialCapital: 10000, Costs: noCosts()}, testBars("AAPL", 100, 97, 94, 96))
	suite.Require().NoError(err)

	suite.Require().Len(portfolio.Trades, 1)
	suite.Equal(types.ExitReasonStopLoss, portfolio.Trades[0].ExitReason)
	suite.Equal(94.0, portfolio.Trades[0].ExitPrice)
	suite.Equal(-600.0, portfolio.Trades[0].PnL)
	suite.Equal(9400.0, portfolio.Cash)
}

func (suite *SimulatorTestSuite) TestTakeProfit() {
	strategy := types.Strategy{
		EntryLong:     types.Equals(closeOperand(), types.ConstantOperand(100)),
		ExitLong:      never(),
		PositionSize:  1,
		StopLossPct:   5,
		TakeProfitPct: 10,
	}

	portfolio, err := suite.run(strategy, SimulatorOptions{InitialCapital: 10000, Costs: noCosts()}, testBars("AAPL", 100, 105, 111, 104))
	suite.Require().NoError(err)

	suite.Require().Len(portfolio.Trades, 1)
	suite.Equal(types.ExitReasonTakeProfit, portfolio.Trades[0].ExitReason)
	suite.Equal(1100.0, portfolio.Trades[0].PnL)
	suite.Equal(11100.0, portfolio.Cash)
}

func (suite *SimulatorTestSuite) TestShortRoundTrip() {
	strategy := types.Strategy{
		EntryLong:    never(),
		ExitLong:     never(),
		EntryShort:   types.Equals(closeOperand(), types.ConstantOperand(50)),
		ExitShort:    types.Below(closeOperand(), types.ConstantOperand(41)),
		PositionSize: 1,
	}
	bars := testBars("TSLA", 50, 45, 40)

	portfolio, err := suite.run(strategy, SimulatorOptions{InitialCapital: 10000, Costs: noCosts(), AllowShort: true}, bars)
	suite.Require().NoError(err)

	suite.Require().Len(portfolio.Trades, 1)
	suite.Equal(types.DirectionShort, portfolio.Trades[0].Direction)
	suite.InDelta(2000.0, portfolio.Trades[0].PnL, 1e-9)
	suite.InDelta(12000.0, portfolio.Cash, 1e-9)
	suite.InDelta(11000.0, portfolio.EquityCurve[1].Equity, 1e-9)

	// Shorting disabled by configuration
	portfolio, err = suite.run(strategy, SimulatorOptions{InitialCapital: 10000, Costs: noCosts()}, bars)
	suite.Require().NoError(err)
	suite.Empty(portfolio.Trades)
	suite.Equal(10000.0, portfolio.Cash)
}

func (suite *SimulatorTestSuite) TestOpenPositionSurvivesLastBar() {
	strategy := types.Strategy{
		EntryLong:    types.Equals(closeOperand(), types.ConstantOperand(100)),
		ExitLong:     never(),
		PositionSize: 1,
	}

	portfolio, err := suite.run(strategy, SimulatorOptions{InitialCapital: 10000, Costs: noCosts()}, testBars("AAPL", 100, 102))
	suite.Require().NoError(err)

	suite.Empty(portfolio.Trades)
	suite.True(portfolio.HasPosition("AAPL"))
	suite.Equal(10200.0, portfolio.LastEquity())
}

func (suite *SimulatorTestSuite) TestIndicatorCrossover() {
	sma := func(period int) types.Operand {
		return types.IndicatorOperand(types.IndicatorTypeSMA, period)
	}

	strategy := types.Strategy{
		Name:         "sma-cross",
		EntryLong:    types.CrossAbove(sma(2), sma(3)),
		ExitLong:     types.CrossBelow(sma(2), sma(3)),
		PositionSize: 1,
	}

	// SMA2 crosses above SMA3 at index 4 and below at index 7.
	bars := testBars("AAPL", 5, 4, 3, 4, 6, 8, 7, 5, 3, 2)

	portfolio, err := suite.run(strategy, SimulatorOptions{InitialCapital: 1000, Costs: noCosts()}, bars)
	suite.Require().NoError(err)

	suite.Require().Len(portfolio.Trades, 1)
	suite.Equal(bars[4].Date, portfolio.Trades[0].EntryDate)
	suite.Equal(bars[7].Date, portfolio.Trades[0].ExitDate)
	suite.Equal(6.0, portfolio.Trades[0].EntryPrice)
	suite.Equal(5.0, portfolio.Trades[0].ExitPrice)
}

func (suite *SimulatorTestSuite) TestEquityMatchesTradeRecordOnGeneratedData() {
	sma := func(period int) types.Operand {
		return types.IndicatorOperand(types.IndicatorTypeSMA, period)
	}
	rsi := types.IndicatorOperand(types.IndicatorTypeRSI, 14)

	strategy := types.Strategy{
		EntryLong:     types.And(types.CrossAbove(sma(5), sma(20)), types.Below(rsi, types.ConstantOperand(70))),
		ExitLong:      types.CrossBelow(sma(5), sma(20)),
		EntryShort:    types.CrossBelow(sma(5), sma(20)),
		ExitShort:     types.CrossAbove(sma(5), sma(20)),
		PositionSize:  0.8,
		StopLossPct:   4,
		TakeProfitPct: 8,
	}
	costs := NewCostModel(commission_fee.NewFlatPercentCommissionFee(1, 0.05), 0.1)
	bars := mocks.GenerateBars("SPY", 400)

	portfolio, err := suite.run(strategy, SimulatorOptions{InitialCapital: 50000, Costs: costs, AllowShort: true}, bars)
	suite.Require().NoError(err)
	suite.Len(portfolio.EquityCurve, len(bars))

	realized := 0.0
	for _, trade := range portfolio.Trades {
		realized += trade.NetPnL()
		suite.False(trade.ExitDate.Before(trade.EntryDate))
	}

	last := bars[len(bars)-1]
	closes := map[string]float64{last.Code: last.Close}
	suite.InDelta(portfolio.ExpectedEquity(closes), portfolio.MarkedEquity(closes), EquityTolerance)

	if portfolio.OpenPositions() == 0 {
		suite.InDelta(50000+realized, portfolio.Cash, EquityTolerance)
	}
}

func (suite *SimulatorTestSuite) TestRecorderAndProgress() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	recorder := mocks.NewMockRecorder(ctrl)
	recorder.EXPECT().RecordEquity("AAPL", gomock.Any()).Return(nil).Times(4)
	recorder.EXPECT().RecordTrade(gomock.Any()).Return(nil).Times(1)

	var progress []int

	strategy := types.Strategy{
		EntryLong:    types.Below(closeOperand(), types.ConstantOperand(101)),
		ExitLong:     types.Above(closeOperand(), types.ConstantOperand(119)),
		PositionSize: 0.5,
	}
	options := SimulatorOptions{
		InitialCapital: 100000,
		Costs:          noCosts(),
		Recorder:       recorder,
		OnBar: func(current int, total int) error {
			suite.Equal(4, total)
			progress = append(progress, current)

			return nil
		},
	}

	_, err := suite.run(strategy, options, testBars("AAPL", 100, 110, 120, 130))
	suite.Require().NoError(err)
	suite.Equal([]int{1, 2, 3, 4}, progress)
}

func (suite *SimulatorTestSuite) TestProgressCallbackStopsRun() {
	stop := stderrors.New("stop")

	strategy := types.Strategy{EntryLong: never(), ExitLong: never(), PositionSize: 1}
	options := SimulatorOptions{
		InitialCapital: 1000,
		OnBar: func(current int, _ int) error {
			if current == 2 {
				return stop
			}

			return nil
		},
	}

	portfolio, err := suite.run(strategy, options, testBars("AAPL", 1, 2, 3, 4))
	suite.ErrorIs(err, stop)
	suite.Len(portfolio.EquityCurve, 2)
}

func (suite *SimulatorTestSuite) TestRunErrors() {
	strategy := types.Strategy{EntryLong: never(), ExitLong: never(), PositionSize: 1}

	simulator, err := NewSimulator(strategy, SimulatorOptions{InitialCapital: 1000})
	suite.Require().NoError(err)

	_, err = simulator.Run(suite.arena, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyBars))

	unordered := testBars("AAPL", 1, 2, 3)
	unordered[1], unordered[2] = unordered[2], unordered[1]

	_, err = simulator.Run(suite.arena, unordered)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = simulator.Run(nil, testBars("AAPL", 1, 2, 3))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *SimulatorTestSuite) TestValidateStrategy() {
	tests := []struct {
		name     string
		strategy types.Strategy
		code     errors.ErrorCode
	}{
		{
			name:     "missing exit",
			strategy: types.Strategy{EntryLong: never(), PositionSize: 1},
			code:     errors.ErrCodeInvalidRule,
		},
		{
			name:     "missing entry",
			strategy: types.Strategy{ExitLong: never(), PositionSize: 1},
			code:     errors.ErrCodeInvalidRule,
		},
		{
			name:     "zero position size",
			strategy: types.Strategy{EntryLong: never(), ExitLong: never()},
			code:     errors.ErrCodeInvalidPositionSize,
		},
		{
			name:     "position size above one",
			strategy: types.Strategy{EntryLong: never(), ExitLong: never(), PositionSize: 1.5},
			code:     errors.ErrCodeInvalidPositionSize,
		},
		{
			name:     "negative stop loss",
			strategy: types.Strategy{EntryLong: never(), ExitLong: never(), PositionSize: 1, StopLossPct: -1},
			code:     errors.ErrCodeInvalidParameter,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := ValidateStrategy(tc.strategy)
			suite.True(errors.HasCode(err, tc.code), "got %v", err)

			_, err = NewSimulator(tc.strategy, SimulatorOptions{InitialCapital: 1000})
			suite.True(errors.HasCode(err, tc.code))
		})
	}

	_, err := NewSimulator(types.Strategy{EntryLong: never(), ExitLong: never(), PositionSize: 1}, SimulatorOptions{})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}
