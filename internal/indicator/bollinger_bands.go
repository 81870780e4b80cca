package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// BollingerBands places bands a multiple of the population standard deviation
// above and below the SMA of closes. Param2 is the multiplier times 100.
type BollingerBands struct{}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands() Indicator {
	return &BollingerBands{}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollinger
}

// Validate checks the period and the multiplier.
func (bb *BollingerBands) Validate(key Key) error {
	if err := validatePeriod(bb.Name(), key.Period); err != nil {
		return err
	}

	if key.Param2 <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "bollinger multiplier must be positive, got %d", key.Param2)
	}

	return nil
}

// Compute implements Indicator.
func (bb *BollingerBands) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueBollinger)

	period := key.Period
	multiplier := float64(key.Param2) / 100
	closes := closePrices(a, bars)

	for i := period - 1; i < len(bars); i++ {
		middle := windowMean(closes, i, period)

		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - middle
			variance += d * d
		}

		width := multiplier * math.Sqrt(variance/float64(period))

		values[i] = types.IndicatorValue{
			Kind:  types.IndicatorValueBollinger,
			Valid: true,
			Bollinger: types.BollingerValue{
				Upper:  middle + width,
				Middle: middle,
				Lower:  middle - width,
			},
		}
	}

	return values
}
