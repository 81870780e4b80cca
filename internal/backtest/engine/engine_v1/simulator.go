package engine

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/evaluator"
	"github.com/rxtech-lab/argo-kernel/internal/indicator"
	"github.com/rxtech-lab/argo-kernel/internal/logger"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"go.uber.org/zap"
)

// OnBarCallback is called after each processed bar. Returning an error stops the run.
type OnBarCallback func(current int, total int) error

// SimulatorOptions configures one simulation.
type SimulatorOptions struct {
	InitialCapital float64
	Costs          CostModel
	AllowShort     bool
	Recorder       Recorder
	Logger         *logger.Logger
	OnBar          OnBarCallback
}

// Simulator drives the per-bar state machine of one strategy over one bar
// series. Each bar runs, in order: stop-loss and take-profit triggers, the
// exit rule of the open direction, the entry rules when flat, then the equity
// mark and the accounting check.
type Simulator struct {
	strategy types.Strategy
	options  SimulatorOptions
	trading  *BacktestTrading
	log      *logger.Logger
}

// NewSimulator validates the strategy and creates a simulator for it.
func NewSimulator(strategy types.Strategy, options SimulatorOptions) (*Simulator, error) {
	if err := ValidateStrategy(strategy); err != nil {
		return nil, err
	}

	if options.InitialCapital <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "initial capital must be positive, got %f", options.InitialCapital)
	}

	if options.Costs.Commission == nil {
		options.Costs = NewCostModel(nil, options.Costs.SlippagePct)
	}

	log := options.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Simulator{
		strategy: strategy,
		options:  options,
		trading:  NewBacktestTrading(options.InitialCapital, options.Costs, options.Recorder, log),
		log:      log,
	}, nil
}

// ValidateStrategy checks the parts of a strategy the simulator relies on.
func ValidateStrategy(strategy types.Strategy) error {
	if strategy.EntryLong == nil || strategy.ExitLong == nil {
		return errors.Newf(errors.ErrCodeInvalidRule, "strategy %q needs both entry_long and exit_long rules", strategy.Name)
	}

	if strategy.PositionSize <= 0 || strategy.PositionSize > 1 {
		return errors.Newf(errors.ErrCodeInvalidPositionSize, "position size must be in (0, 1], got %f", strategy.PositionSize)
	}

	if strategy.StopLossPct < 0 || strategy.TakeProfitPct < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "stop loss and take profit percentages cannot be negative")
	}

	if strategy.MaxPositions < 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "max positions cannot be negative, got %d", strategy.MaxPositions)
	}

	return nil
}

// Run simulates the strategy over bars, computing its indicators in a. Bars
// must be ascending by date. The returned portfolio holds the trades, the
// equity curve and any position still open after the last bar.
func (s *Simulator) Run(a *arena.Arena, bars []types.Bar) (*types.Portfolio, error) {
	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyBars, "cannot simulate an empty bar series")
	}

	for i := 1; i < len(bars); i++ {
		if bars[i].Date.Before(bars[i-1].Date) {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter, "bars are not ascending by date at index %d", i)
		}
	}

	table, err := indicator.BuildTable(a, bars, s.strategy.Rules()...)
	if err != nil {
		return nil, err
	}

	s.trading.Reset(s.options.InitialCapital)

	s.log.Debug("Simulation started",
		zap.String("strategy", s.strategy.Name),
		zap.Int("bars", len(bars)),
		zap.Strings("indicators", table.Keys()),
	)

	for i := range bars {
		if err := s.step(bars, table, i); err != nil {
			return s.trading.Portfolio(), err
		}

		if s.options.OnBar != nil {
			if err := s.options.OnBar(i+1, len(bars)); err != nil {
				return s.trading.Portfolio(), err
			}
		}
	}

	portfolio := s.trading.Portfolio()

	s.log.Debug("Simulation finished",
		zap.String("strategy", s.strategy.Name),
		zap.Int("trades", len(portfolio.Trades)),
		zap.Float64("cash", portfolio.Cash),
		zap.Float64("equity", portfolio.LastEquity()),
	)

	return portfolio, nil
}

func (s *Simulator) step(bars []types.Bar, table *indicator.Table, index int) error {
	bar := bars[index]
	portfolio := s.trading.Portfolio()

	// 1. Protective triggers
	if position, ok := portfolio.Positions[bar.Code]; ok {
		var reason types.ExitReason

		switch {
		case position.StopLossHit(bar.Close):
			reason = types.ExitReasonStopLoss
		case position.TakeProfitHit(bar.Close):
			reason = types.ExitReasonTakeProfit
		}

		if reason != "" {
			if _, err := s.trading.ClosePosition(bar, reason); err != nil {
				return err
			}
		}
	}

	// 2. Exit rule of the open direction
	if position, ok := portfolio.Positions[bar.Code]; ok {
		exitRule := s.strategy.ExitLong
		if position.Direction == types.DirectionShort {
			exitRule = s.strategy.ExitShort
		}

		if evaluator.Evaluate(exitRule, bars, table, index) {
			if _, err := s.trading.ClosePosition(bar, types.ExitReasonStrategy); err != nil {
				return err
			}
		}
	}

	// 3. Entries when flat
	if !portfolio.HasPosition(bar.Code) && portfolio.OpenPositions() < s.maxPositions() {
		direction, enter := s.entryDirection(bars, table, index)
		if enter {
			if _, err := s.trading.OpenPosition(bar, direction, s.strategy); err != nil {
				return err
			}
		}
	}

	// 4. Equity
	_, err := s.trading.MarkToMarket(bar)

	return err
}

func (s *Simulator) entryDirection(bars []types.Bar, table *indicator.Table, index int) (types.Direction, bool) {
	if evaluator.Evaluate(s.strategy.EntryLong, bars, table, index) {
		return types.DirectionLong, true
	}

	if s.options.AllowShort && s.strategy.CanShort() && evaluator.Evaluate(s.strategy.EntryShort, bars, table, index) {
		return types.DirectionShort, true
	}

	return "", false
}

func (s *Simulator) maxPositions() int {
	if s.strategy.MaxPositions <= 0 {
		return 1
	}

	return s.strategy.MaxPositions
}
