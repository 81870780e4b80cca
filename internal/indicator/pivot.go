package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// Pivot computes classic floor pivot levels from the previous bar.
type Pivot struct{}

// NewPivot creates a new Pivot indicator.
func NewPivot() Indicator {
	return &Pivot{}
}

// Name returns the name of the indicator.
func (p *Pivot) Name() types.IndicatorType {
	return types.IndicatorTypePivot
}

// Validate accepts any key; pivots take no period.
func (p *Pivot) Validate(Key) error {
	return nil
}

// Compute implements Indicator. Index 0 has no previous bar and is invalid.
func (p *Pivot) Compute(a *arena.Arena, bars []types.Bar, _ Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValuePivot)

	for i := 1; i < len(bars); i++ {
		values[i] = types.IndicatorValue{
			Kind:  types.IndicatorValuePivot,
			Valid: true,
			Pivot: pivotLevels(bars[i-1].High, bars[i-1].Low, bars[i-1].Close),
		}
	}

	return values
}

func pivotLevels(high, low, close float64) types.PivotValue {
	pivot := (high + low + close) / 3

	return types.PivotValue{
		Pivot: pivot,
		R1:    2*pivot - low,
		S1:    2*pivot - high,
		R2:    pivot + (high - low),
		S2:    pivot - (high - low),
		R3:    high + 2*(pivot-low),
		S3:    low - 2*(high-pivot),
	}
}
