package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// RSI represents the Relative Strength Index indicator with Wilder smoothing.
type RSI struct{}

// NewRSI creates a new RSI indicator.
func NewRSI() Indicator {
	return &RSI{}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Validate checks that the period is positive.
func (r *RSI) Validate(key Key) error {
	return validatePeriod(r.Name(), key.Period)
}

// Compute implements Indicator. The first value needs period price changes,
// so index period is the first valid one.
func (r *RSI) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueSimple)

	period := key.Period
	if period >= len(bars) {
		return values
	}

	avgGain := 0.0
	avgLoss := 0.0

	// Seed with the plain means of the first period changes
	for i := 1; i <= period; i++ {
		gain, loss := priceChange(bars, i)
		avgGain += gain
		avgLoss += loss
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	values[period] = simpleValue(rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(bars); i++ {
		gain, loss := priceChange(bars, i)
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		values[i] = simpleValue(rsiValue(avgGain, avgLoss))
	}

	return values
}

func priceChange(bars []types.Bar, i int) (gain, loss float64) {
	change := bars[i].Close - bars[i-1].Close
	if change > 0 {
		return change, 0
	}

	return 0, -change
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}

		return 100
	}

	return 100 - 100/(1+avgGain/avgLoss)
}
