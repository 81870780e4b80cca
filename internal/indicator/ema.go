package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// EMA is the exponential moving average of closes with k = 2/(period+1),
// seeded by the SMA of the first period closes.
type EMA struct{}

// NewEMA creates a new EMA indicator.
func NewEMA() Indicator {
	return &EMA{}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Validate checks that the period is positive.
func (e *EMA) Validate(key Key) error {
	return validatePeriod(e.Name(), key.Period)
}

// Compute implements Indicator.
func (e *EMA) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueSimple)

	ema, first := emaFrom(a, closePrices(a, bars), 0, key.Period)
	for i := first; i < len(bars); i++ {
		values[i] = simpleValue(ema[i])
	}

	return values
}
