package types

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of an open position.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// ExitReason records what closed a trade.
type ExitReason string

const (
	ExitReasonStopLoss   ExitReason = "stop_loss"
	ExitReasonTakeProfit ExitReason = "take_profit"
	ExitReasonStrategy   ExitReason = "strategy"
)

// Position is an open holding. Quantity is signed: positive for long,
// negative for short. A zero StopLossPrice or TakeProfitPrice disables the trigger.
type Position struct {
	Code            string    `yaml:"code" json:"code"`
	Direction       Direction `yaml:"direction" json:"direction"`
	Quantity        float64   `yaml:"quantity" json:"quantity"`
	EntryPrice      float64   `yaml:"entry_price" json:"entry_price"`
	EntryDate       time.Time `yaml:"entry_date" json:"entry_date"`
	StopLossPrice   float64   `yaml:"stop_loss_price" json:"stop_loss_price"`
	TakeProfitPrice float64   `yaml:"take_profit_price" json:"take_profit_price"`
	EntryFee        float64   `yaml:"entry_fee" json:"entry_fee"`
}

// AbsQuantity returns the unsigned size of the position.
func (p Position) AbsQuantity() float64 {
	return math.Abs(p.Quantity)
}

// MarketValue is what the position contributes to equity at the given close.
// A long is worth |qty|*close. A short holds its entry notional as collateral
// and is worth |qty|*(2*entry - close), so its equity moves against price.
func (p Position) MarketValue(close float64) float64 {
	if p.Direction == DirectionShort {
		return p.AbsQuantity() * (2*p.EntryPrice - close)
	}

	return p.AbsQuantity() * close
}

// UnrealizedPnL is the gross pnl the position would realize at the given price.
func (p Position) UnrealizedPnL(price float64) float64 {
	return CalculatePnL(p.Direction, p.AbsQuantity(), p.EntryPrice, price)
}

// StopLossHit reports whether the close breaches the stop-loss level.
func (p Position) StopLossHit(close float64) bool {
	if p.StopLossPrice <= 0 {
		return false
	}

	if p.Direction == DirectionShort {
		return close >= p.StopLossPrice
	}

	return close <= p.StopLossPrice
}

// TakeProfitHit reports whether the close reaches the take-profit level.
func (p Position) TakeProfitHit(close float64) bool {
	if p.TakeProfitPrice <= 0 {
		return false
	}

	if p.Direction == DirectionShort {
		return close <= p.TakeProfitPrice
	}

	return close >= p.TakeProfitPrice
}

// ClosedTrade is a completed round trip. PnL is gross of fees; Fees holds the
// entry and exit commissions.
type ClosedTrade struct {
	ID         string     `yaml:"id" json:"id"`
	Code       string     `yaml:"code" json:"code"`
	Direction  Direction  `yaml:"direction" json:"direction"`
	Quantity   float64    `yaml:"quantity" json:"quantity"`
	EntryPrice float64    `yaml:"entry_price" json:"entry_price"`
	EntryDate  time.Time  `yaml:"entry_date" json:"entry_date"`
	ExitPrice  float64    `yaml:"exit_price" json:"exit_price"`
	ExitDate   time.Time  `yaml:"exit_date" json:"exit_date"`
	PnL        float64    `yaml:"pnl" json:"pnl"`
	Fees       float64    `yaml:"fees" json:"fees"`
	ExitReason ExitReason `yaml:"exit_reason" json:"exit_reason"`
}

// NetPnL returns the pnl after entry and exit commissions.
func (t ClosedTrade) NetPnL() float64 {
	net, _ := decimal.NewFromFloat(t.PnL).Sub(decimal.NewFromFloat(t.Fees)).Float64()

	return net
}

// Duration returns how long the trade was held.
func (t ClosedTrade) Duration() time.Duration {
	return t.ExitDate.Sub(t.EntryDate)
}

// CalculatePnL returns quantity*(exit-entry) for a long and quantity*(entry-exit)
// for a short, computed in decimal arithmetic.
func CalculatePnL(direction Direction, quantity, entryPrice, exitPrice float64) float64 {
	qty := decimal.NewFromFloat(quantity)
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)

	var result decimal.Decimal
	if direction == DirectionShort {
		result = qty.Mul(entry.Sub(exit))
	} else {
		result = qty.Mul(exit.Sub(entry))
	}

	pnl, _ := result.Float64()

	return pnl
}
