package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// SMA is the simple moving average of closes.
type SMA struct{}

// NewSMA creates a new SMA indicator.
func NewSMA() Indicator {
	return &SMA{}
}

// Name returns the name of the indicator.
func (s *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Validate checks that the period is positive.
func (s *SMA) Validate(key Key) error {
	return validatePeriod(s.Name(), key.Period)
}

// Compute returns mean(close[i-period+1..i]), valid once i+1 >= period.
func (s *SMA) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueSimple)

	closes := closePrices(a, bars)
	for i := key.Period - 1; i < len(bars); i++ {
		values[i] = simpleValue(windowMean(closes, i, key.Period))
	}

	return values
}
