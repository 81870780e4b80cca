package engine

import (
	"math"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kernel/internal/logger"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/internal/utils"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"go.uber.org/zap"
)

// EquityTolerance is the largest absolute mismatch allowed between the marked
// equity and the equity implied by the trade record.
const EquityTolerance = 0.01

// Recorder persists what a run produces.
type Recorder interface {
	RecordTrade(trade types.ClosedTrade) error
	RecordEquity(code string, point types.EquityPoint) error
}

// BacktestTrading executes entries and exits against a portfolio and keeps
// its cash bookkeeping.
type BacktestTrading struct {
	portfolio *types.Portfolio
	costs     CostModel
	recorder  Recorder
	log       *logger.Logger
}

// NewBacktestTrading creates a trading system over a fresh portfolio.
// recorder may be nil.
func NewBacktestTrading(initialCapital float64, costs CostModel, recorder Recorder, log *logger.Logger) *BacktestTrading {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BacktestTrading{
		portfolio: types.NewPortfolio(initialCapital),
		costs:     costs,
		recorder:  recorder,
		log:       log,
	}
}

// Portfolio returns the live portfolio.
func (b *BacktestTrading) Portfolio() *types.Portfolio {
	return b.portfolio
}

// Reset discards all positions, trades and equity and refunds the capital.
func (b *BacktestTrading) Reset(initialCapital float64) {
	b.portfolio = types.NewPortfolio(initialCapital)
}

// OpenPosition enters a position at the bar's close. It returns None when the
// sized quantity is below one unit.
func (b *BacktestTrading) OpenPosition(bar types.Bar, direction types.Direction, strategy types.Strategy) (optional.Option[types.Position], error) {
	if b.portfolio.HasPosition(bar.Code) {
		return optional.None[types.Position](), errors.Newf(errors.ErrCodePositionExists, "position for %s already open", bar.Code)
	}

	fill := b.costs.FillPrice(bar.Close, entrySide(direction))
	if fill <= 0 || math.IsNaN(fill) || math.IsInf(fill, 0) {
		return optional.None[types.Position](), errors.Newf(errors.ErrCodeInvalidFillPrice, "invalid fill price %f for %s", fill, bar.Code)
	}

	quantity := utils.CalculatePositionQuantity(b.portfolio.Cash, fill, strategy.PositionSize, b.costs.Commission)
	if quantity < 1 {
		b.log.Debug("Entry skipped, position size below one unit",
			zap.String("code", bar.Code),
			zap.Float64("cash", b.portfolio.Cash),
			zap.Float64("price", fill),
		)

		return optional.None[types.Position](), nil
	}

	fee := b.costs.Fee(quantity, fill)

	signed := quantity
	if direction == types.DirectionShort {
		signed = -quantity
	}

	position := types.Position{
		Code:            bar.Code,
		Direction:       direction,
		Quantity:        signed,
		EntryPrice:      fill,
		EntryDate:       bar.Date,
		StopLossPrice:   stopLossPrice(direction, fill, strategy.StopLossPct),
		TakeProfitPrice: takeProfitPrice(direction, fill, strategy.TakeProfitPct),
		EntryFee:        fee,
	}

	// Longs pay for the shares; shorts post the entry notional as collateral.
	b.portfolio.Cash -= quantity*fill + fee
	b.portfolio.Positions[bar.Code] = position

	b.log.Debug("Position opened",
		zap.String("code", bar.Code),
		zap.String("direction", string(direction)),
		zap.Float64("quantity", quantity),
		zap.Float64("price", fill),
		zap.Float64("fee", fee),
		zap.Time("date", bar.Date),
	)

	return optional.Some(position), nil
}

// ClosePosition exits the open position for the bar's code at its close.
func (b *BacktestTrading) ClosePosition(bar types.Bar, reason types.ExitReason) (types.ClosedTrade, error) {
	position, ok := b.portfolio.Positions[bar.Code]
	if !ok {
		return types.ClosedTrade{}, errors.Newf(errors.ErrCodePositionNotFound, "no open position for %s", bar.Code)
	}

	fill := b.costs.FillPrice(bar.Close, exitSide(position.Direction))
	quantity := position.AbsQuantity()
	fee := b.costs.Fee(quantity, fill)

	pnl := types.CalculatePnL(position.Direction, quantity, position.EntryPrice, fill)

	// Returning collateral plus pnl is the same as the long proceeds for a long.
	b.portfolio.Cash += quantity*position.EntryPrice + pnl - fee

	trade := types.ClosedTrade{
		ID:         uuid.New().String(),
		Code:       position.Code,
		Direction:  position.Direction,
		Quantity:   quantity,
		EntryPrice: position.EntryPrice,
		EntryDate:  position.EntryDate,
		ExitPrice:  fill,
		ExitDate:   bar.Date,
		PnL:        pnl,
		Fees:       position.EntryFee + fee,
		ExitReason: reason,
	}

	delete(b.portfolio.Positions, bar.Code)
	b.portfolio.Trades = append(b.portfolio.Trades, trade)

	b.log.Debug("Position closed",
		zap.String("code", trade.Code),
		zap.String("reason", string(reason)),
		zap.Float64("quantity", quantity),
		zap.Float64("price", fill),
		zap.Float64("pnl", pnl),
		zap.Time("date", bar.Date),
	)

	if b.recorder != nil {
		if err := b.recorder.RecordTrade(trade); err != nil {
			return trade, errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to record trade", err)
		}
	}

	return trade, nil
}

// MarkToMarket appends the equity of the bar and verifies that the cash
// bookkeeping still agrees with the trade record. A mismatch is fatal.
func (b *BacktestTrading) MarkToMarket(bar types.Bar) (types.EquityPoint, error) {
	closes := map[string]float64{bar.Code: bar.Close}

	marked := b.portfolio.MarkedEquity(closes)
	expected := b.portfolio.ExpectedEquity(closes)

	point := types.EquityPoint{Date: bar.Date, Equity: marked, Cash: b.portfolio.Cash}
	b.portfolio.EquityCurve = append(b.portfolio.EquityCurve, point)

	if math.Abs(marked-expected) > EquityTolerance {
		violation := &errors.InvariantViolationError{
			Date:      bar.Date,
			Cash:      b.portfolio.Cash,
			Marked:    marked,
			Expected:  expected,
			Tolerance: EquityTolerance,
		}

		b.log.Error("Equity invariant violated",
			zap.String("code", bar.Code),
			zap.Time("date", bar.Date),
			zap.Float64("cash", b.portfolio.Cash),
			zap.Float64("marked", marked),
			zap.Float64("expected", expected),
		)

		return point, errors.Wrap(errors.ErrCodeInvariantViolation, "portfolio accounting is inconsistent", violation)
	}

	if b.recorder != nil {
		if err := b.recorder.RecordEquity(bar.Code, point); err != nil {
			return point, errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to record equity", err)
		}
	}

	return point, nil
}

func stopLossPrice(direction types.Direction, entry float64, pct float64) float64 {
	if pct <= 0 {
		return 0
	}

	if direction == types.DirectionShort {
		return entry * (1 + pct/100)
	}

	return entry * (1 - pct/100)
}

func takeProfitPrice(direction types.Direction, entry float64, pct float64) float64 {
	if pct <= 0 {
		return 0
	}

	if direction == types.DirectionShort {
		return entry * (1 - pct/100)
	}

	return entry * (1 + pct/100)
}
