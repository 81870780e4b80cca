// Package metrics aggregates the trades and the equity curve of a finished run
// into summary statistics. Nothing here mutates its inputs.
package metrics

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/shopspring/decimal"
)

const (
	// DefaultPeriodsPerYear annualizes per-bar ratios of daily bars.
	DefaultPeriodsPerYear = 252

	// ProfitFactorCap is reported when there are winning trades and no losses.
	ProfitFactorCap = 999.0

	daysPerYear = 365.0
)

// Options carries the run parameters the statistics depend on.
type Options struct {
	InitialCapital float64
	// RiskFreeRate is annual, as a fraction (0.02 = 2%).
	RiskFreeRate   float64
	PeriodsPerYear int
}

// Calculate summarizes trades and equity.
func Calculate(trades []types.ClosedTrade, equity []types.EquityPoint, options Options) types.Metrics {
	if options.PeriodsPerYear <= 0 {
		options.PeriodsPerYear = DefaultPeriodsPerYear
	}

	metrics := types.Metrics{}

	fillTradeStats(&metrics, trades)
	fillReturnStats(&metrics, equity, options)

	return metrics
}

func fillTradeStats(metrics *types.Metrics, trades []types.ClosedTrade) {
	metrics.NumberOfTrades = len(trades)
	if len(trades) == 0 {
		return
	}

	realized := decimal.Zero
	fees := decimal.Zero
	wins := decimal.Zero
	losses := decimal.Zero

	var held time.Duration

	largestWin := 0.0
	largestLoss := 0.0

	for _, trade := range trades {
		net := trade.NetPnL()
		netDecimal := decimal.NewFromFloat(net)

		realized = realized.Add(netDecimal)
		fees = fees.Add(decimal.NewFromFloat(trade.Fees))
		held += trade.Duration()

		// A trade that breaks even counts as a loss.
		if net > 0 {
			metrics.NumberOfWinningTrades++
			wins = wins.Add(netDecimal)
			largestWin = math.Max(largestWin, net)
		} else {
			metrics.NumberOfLosingTrades++
			losses = losses.Add(netDecimal)
			largestLoss = math.Min(largestLoss, net)
		}
	}

	count := decimal.NewFromInt(int64(len(trades)))

	metrics.RealizedPnL = realized.InexactFloat64()
	metrics.TotalFees = fees.InexactFloat64()
	metrics.AverageTrade = realized.Div(count).InexactFloat64()
	metrics.WinRate = float64(metrics.NumberOfWinningTrades) / float64(len(trades))
	metrics.LargestWin = largestWin
	metrics.LargestLoss = largestLoss
	metrics.AverageTradeDuration = held / time.Duration(len(trades))

	if metrics.NumberOfWinningTrades > 0 {
		metrics.AverageWin = wins.Div(decimal.NewFromInt(int64(metrics.NumberOfWinningTrades))).InexactFloat64()
	}

	if metrics.NumberOfLosingTrades > 0 {
		metrics.AverageLoss = losses.Div(decimal.NewFromInt(int64(metrics.NumberOfLosingTrades))).InexactFloat64()
	}

	switch {
	case losses.IsZero() && wins.IsPositive():
		metrics.ProfitFactor = ProfitFactorCap
	case losses.IsZero():
		metrics.ProfitFactor = 0
	default:
		metrics.ProfitFactor = wins.Div(losses.Abs()).InexactFloat64()
	}
}

func fillReturnStats(metrics *types.Metrics, equity []types.EquityPoint, options Options) {
	if len(equity) == 0 || options.InitialCapital <= 0 {
		return
	}

	final := equity[len(equity)-1].Equity
	metrics.TotalReturn = final/options.InitialCapital - 1
	metrics.AnnualizedReturn = AnnualizedReturn(metrics.TotalReturn, equity[0].Date, equity[len(equity)-1].Date)

	returns := Returns(equity, options.InitialCapital)
	riskFree := options.RiskFreeRate / float64(options.PeriodsPerYear)

	metrics.SharpeRatio = SharpeRatio(returns, riskFree, options.PeriodsPerYear)
	metrics.SortinoRatio = SortinoRatio(returns, riskFree, options.PeriodsPerYear)
	metrics.MaxDrawdown, metrics.MaxDrawdownDuration = MaxDrawdown(equity, options.InitialCapital)
}

// Returns converts an equity curve into simple per-bar returns. The first
// return is measured against the initial capital.
func Returns(equity []types.EquityPoint, initialCapital float64) []float64 {
	returns := make([]float64, 0, len(equity))
	previous := initialCapital

	for _, point := range equity {
		if previous > 0 {
			returns = append(returns, point.Equity/previous-1)
		} else {
			returns = append(returns, 0)
		}

		previous = point.Equity
	}

	return returns
}

// AnnualizedReturn compounds total over the calendar span from start to end.
// It is 0 when the span is empty.
func AnnualizedReturn(total float64, start time.Time, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	if days <= 0 {
		return 0
	}

	if total <= -1 {
		return -1
	}

	return math.Pow(1+total, daysPerYear/days) - 1
}

// SharpeRatio is the annualized mean excess return over its sample standard
// deviation. riskFree is per period.
func SharpeRatio(returns []float64, riskFree float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r - riskFree
	}

	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - riskFree - mean
		variance += d * d
	}

	std := math.Sqrt(variance / float64(len(returns)-1))
	if std == 0 {
		return 0
	}

	return mean / std * math.Sqrt(float64(periodsPerYear))
}

// SortinoRatio is SharpeRatio with only the returns below riskFree counted as
// risk.
func SortinoRatio(returns []float64, riskFree float64, periodsPerYear int) float64 {
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	downside := 0.0

	for _, r := range returns {
		excess := r - riskFree
		mean += excess

		if excess < 0 {
			downside += excess * excess
		}
	}

	mean /= float64(len(returns))

	deviation := math.Sqrt(downside / float64(len(returns)))
	if deviation == 0 {
		return 0
	}

	return mean / deviation * math.Sqrt(float64(periodsPerYear))
}

// MaxDrawdown returns the largest peak-to-trough decline as a fraction of the
// peak, and the longest run of bars spent below a prior peak. The initial
// capital is the first peak.
func MaxDrawdown(equity []types.EquityPoint, initialCapital float64) (float64, int) {
	peak := initialCapital
	maxDrawdown := 0.0
	duration := 0
	longest := 0

	for _, point := range equity {
		if point.Equity >= peak {
			peak = point.Equity
			duration = 0

			continue
		}

		duration++
		longest = max(longest, duration)

		if peak > 0 {
			maxDrawdown = math.Max(maxDrawdown, (peak-point.Equity)/peak)
		}
	}

	return maxDrawdown, longest
}

// BuyAndHoldReturn is the return of holding from the first to the last close.
func BuyAndHoldReturn(bars []types.Bar) float64 {
	if len(bars) == 0 || bars[0].Close <= 0 {
		return 0
	}

	return bars[len(bars)-1].Close/bars[0].Close - 1
}
