package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// WMA is the linearly weighted moving average of closes. The most recent bar
// has weight period, the oldest weight 1.
type WMA struct{}

// NewWMA creates a new WMA indicator.
func NewWMA() Indicator {
	return &WMA{}
}

// Name returns the name of the indicator.
func (w *WMA) Name() types.IndicatorType {
	return types.IndicatorTypeWMA
}

// Validate checks that the period is positive.
func (w *WMA) Validate(key Key) error {
	return validatePeriod(w.Name(), key.Period)
}

// Compute implements Indicator.
func (w *WMA) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueSimple)

	period := key.Period
	denominator := float64(period*(period+1)) / 2

	for i := period - 1; i < len(bars); i++ {
		weighted := 0.0
		for j := 0; j < period; j++ {
			weighted += bars[i-j].Close * float64(period-j)
		}

		values[i] = simpleValue(weighted / denominator)
	}

	return values
}
