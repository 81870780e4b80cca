package engine

import (
	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// Side is the direction of a single fill.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// CostModel prices fills: slippage moves the fill price against the trader,
// then the commission is charged on the slipped notional.
type CostModel struct {
	Commission  commission_fee.CommissionFee
	SlippagePct float64
}

// NewCostModel creates a cost model. A nil commission charges nothing.
func NewCostModel(commission commission_fee.CommissionFee, slippagePct float64) CostModel {
	if commission == nil {
		commission = commission_fee.NewZeroCommissionFee()
	}

	return CostModel{Commission: commission, SlippagePct: slippagePct}
}

// FillPrice returns the execution price of a fill at price. Buys pay more and
// sells receive less.
func (c CostModel) FillPrice(price float64, side Side) float64 {
	if side == SideBuy {
		return price * (1 + c.SlippagePct/100)
	}

	return price * (1 - c.SlippagePct/100)
}

// Fee returns the commission of a fill.
func (c CostModel) Fee(quantity float64, fillPrice float64) float64 {
	return c.Commission.Calculate(quantity, fillPrice)
}

// entrySide and exitSide map a position direction to the side of its fills.
func entrySide(direction types.Direction) Side {
	if direction == types.DirectionShort {
		return SideSell
	}

	return SideBuy
}

func exitSide(direction types.Direction) Side {
	if direction == types.DirectionShort {
		return SideBuy
	}

	return SideSell
}
