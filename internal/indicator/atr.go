package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// ATR is the Average True Range with Wilder smoothing.
type ATR struct{}

// NewATR creates a new ATR indicator.
func NewATR() Indicator {
	return &ATR{}
}

// Name returns the name of the indicator.
func (atr *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Validate checks that the period is positive.
func (atr *ATR) Validate(key Key) error {
	return validatePeriod(atr.Name(), key.Period)
}

// Compute implements Indicator.
func (atr *ATR) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueSimple)

	period := key.Period
	if period > len(bars) {
		return values
	}

	tr := trueRanges(a, bars)

	current := windowMean(tr, period-1, period)
	values[period-1] = simpleValue(current)

	for i := period; i < len(bars); i++ {
		current = (current*float64(period-1) + tr[i]) / float64(period)
		values[i] = simpleValue(current)
	}

	return values
}

// trueRanges returns TR for every bar; the first bar has no previous close
// and uses high-low.
func trueRanges(a *arena.Arena, bars []types.Bar) []float64 {
	tr := a.Floats(len(bars))
	tr[0] = bars[0].High - bars[0].Low

	for i := 1; i < len(bars); i++ {
		prevClose := bars[i-1].Close
		tr[i] = math.Max(
			bars[i].High-bars[i].Low,
			math.Max(math.Abs(bars[i].High-prevClose), math.Abs(bars[i].Low-prevClose)),
		)
	}

	return tr
}
