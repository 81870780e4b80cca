// Package indicator computes technical indicator series over a bar series.
//
// Every series is index-aligned with its bars. Values in the warmup portion
// are marked invalid instead of being dropped, so a rule can read any index.
package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement.
type Indicator interface {
	// Name returns the indicator type this calculator produces.
	Name() types.IndicatorType
	// Validate checks the parameters of a key before computing.
	Validate(key Key) error
	// Compute fills one value per bar. The key has already been validated and
	// the bars are non-empty.
	Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue
}

func simpleValue(v float64) types.IndicatorValue {
	return types.IndicatorValue{Kind: types.IndicatorValueSimple, Valid: true, Value: v}
}

func invalidValues(values []types.IndicatorValue, kind types.IndicatorValueKind) {
	for i := range values {
		values[i] = types.IndicatorValue{Kind: kind}
	}
}

func closePrices(a *arena.Arena, bars []types.Bar) []float64 {
	closes := a.Floats(len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return closes
}

// windowMean returns the mean of src[end-period+1..end].
func windowMean(src []float64, end, period int) float64 {
	sum := 0.0
	for j := end - period + 1; j <= end; j++ {
		sum += src[j]
	}

	return sum / float64(period)
}

// emaFrom computes an EMA of src whose first defined input is at index from.
// The seed at from+period-1 is the plain mean of the first period inputs.
// It returns the series and the first valid index (len(src) when none is).
func emaFrom(a *arena.Arena, src []float64, from, period int) ([]float64, int) {
	out := a.Floats(len(src))

	first := from + period - 1
	if first >= len(src) {
		return out, len(src)
	}

	out[first] = windowMean(src, first, period)

	k := 2.0 / float64(period+1)
	for i := first + 1; i < len(src); i++ {
		out[i] = (src[i]-out[i-1])*k + out[i-1]
	}

	return out, first
}
