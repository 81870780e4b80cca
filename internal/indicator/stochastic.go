package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// Stochastic is the stochastic oscillator. Period is the %K lookback and
// Param2 the %D smoothing period.
type Stochastic struct{}

// NewStochastic creates a new Stochastic indicator.
func NewStochastic() Indicator {
	return &Stochastic{}
}

// Name returns the name of the indicator.
func (s *Stochastic) Name() types.IndicatorType {
	return types.IndicatorTypeStochastic
}

// Validate checks the %K and %D periods.
func (s *Stochastic) Validate(key Key) error {
	if err := validatePeriod(s.Name(), key.Period); err != nil {
		return err
	}

	if key.Param2 <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "stochastic %%D period must be positive, got %d", key.Param2)
	}

	return nil
}

// Compute implements Indicator. %K is 50 when the window has no range.
// A value is valid once %D is.
func (s *Stochastic) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueStochastic)

	kPeriod := key.Period
	dPeriod := key.Param2

	percentK := a.Floats(len(bars))
	for i := kPeriod - 1; i < len(bars); i++ {
		lowest := bars[i].Low
		highest := bars[i].High

		for j := i - kPeriod + 1; j < i; j++ {
			lowest = min(lowest, bars[j].Low)
			highest = max(highest, bars[j].High)
		}

		if highest == lowest {
			percentK[i] = 50
		} else {
			percentK[i] = 100 * (bars[i].Close - lowest) / (highest - lowest)
		}
	}

	for i := kPeriod + dPeriod - 2; i < len(bars); i++ {
		values[i] = types.IndicatorValue{
			Kind:  types.IndicatorValueStochastic,
			Valid: true,
			Stochastic: types.StochasticValue{
				K: percentK[i],
				D: windowMean(percentK, i, dPeriod),
			},
		}
	}

	return values
}
