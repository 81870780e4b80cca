package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// EquityPoint is one sample of the equity curve.
type EquityPoint struct {
	Date   time.Time `yaml:"date" json:"date"`
	Equity float64   `yaml:"equity" json:"equity"`
	Cash   float64   `yaml:"cash" json:"cash"`
}

// Portfolio is the mutable account state of one backtest run. It holds at most
// one open position per code.
type Portfolio struct {
	InitialCapital float64
	Cash           float64
	Positions      map[string]Position
	Trades         []ClosedTrade
	EquityCurve    []EquityPoint
}

// NewPortfolio creates an empty portfolio funded with the initial capital.
func NewPortfolio(initialCapital float64) *Portfolio {
	return &Portfolio{
		InitialCapital: initialCapital,
		Cash:           initialCapital,
		Positions:      make(map[string]Position),
		Trades:         []ClosedTrade{},
		EquityCurve:    []EquityPoint{},
	}
}

// Position returns the open position for code, if any.
func (p *Portfolio) Position(code string) optional.Option[Position] {
	position, ok := p.Positions[code]
	if !ok {
		return optional.None[Position]()
	}

	return optional.Some(position)
}

// HasPosition reports whether a position is open for code.
func (p *Portfolio) HasPosition(code string) bool {
	_, ok := p.Positions[code]

	return ok
}

// OpenPositions returns the number of open positions.
func (p *Portfolio) OpenPositions() int {
	return len(p.Positions)
}

// MarkedEquity is cash plus the market value of every open position at the
// given closes. A position without a close in the map is marked at entry.
func (p *Portfolio) MarkedEquity(closes map[string]float64) float64 {
	equity := p.Cash

	for code, position := range p.Positions {
		close, ok := closes[code]
		if !ok {
			close = position.EntryPrice
		}

		equity += position.MarketValue(close)
	}

	return equity
}

// ExpectedEquity derives equity from the trade record alone: initial capital
// plus net realized pnl plus unrealized pnl net of entry fees. It never reads
// Cash, so comparing it with MarkedEquity checks the cash bookkeeping.
func (p *Portfolio) ExpectedEquity(closes map[string]float64) float64 {
	equity := p.InitialCapital

	for _, trade := range p.Trades {
		equity += trade.NetPnL()
	}

	for code, position := range p.Positions {
		close, ok := closes[code]
		if !ok {
			close = position.EntryPrice
		}

		equity += position.UnrealizedPnL(close) - position.EntryFee
	}

	return equity
}

// LastEquity returns the most recent equity sample, or the initial capital
// when nothing has been recorded.
func (p *Portfolio) LastEquity() float64 {
	if len(p.EquityCurve) == 0 {
		return p.InitialCapital
	}

	return p.EquityCurve[len(p.EquityCurve)-1].Equity
}
