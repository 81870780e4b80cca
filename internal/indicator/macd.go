package indicator

import (
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// MACD is the difference of a fast and a slow EMA of closes, with a signal
// EMA of that difference. Period is the fast period, Param2 the slow period
// and Param3 the signal period.
type MACD struct{}

// NewMACD creates a new MACD indicator.
func NewMACD() Indicator {
	return &MACD{}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Validate checks all three periods.
func (m *MACD) Validate(key Key) error {
	if err := validatePeriod(m.Name(), key.Period); err != nil {
		return err
	}

	if key.Param2 <= 0 || key.Param3 <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "MACD slow and signal periods must be positive, got %d and %d", key.Param2, key.Param3)
	}

	return nil
}

// Compute implements Indicator. A value is valid once its signal line is.
func (m *MACD) Compute(a *arena.Arena, bars []types.Bar, key Key) []types.IndicatorValue {
	values := a.Values(len(bars))
	invalidValues(values, types.IndicatorValueMACD)

	closes := closePrices(a, bars)
	fast, fastFirst := emaFrom(a, closes, 0, key.Period)
	slow, slowFirst := emaFrom(a, closes, 0, key.Param2)

	lineFirst := max(fastFirst, slowFirst)
	if lineFirst >= len(bars) {
		return values
	}

	line := a.Floats(len(bars))
	for i := lineFirst; i < len(bars); i++ {
		line[i] = fast[i] - slow[i]
	}

	signal, signalFirst := emaFrom(a, line, lineFirst, key.Param3)
	for i := signalFirst; i < len(bars); i++ {
		values[i] = types.IndicatorValue{
			Kind:  types.IndicatorValueMACD,
			Valid: true,
			MACD: types.MACDValue{
				Line:      line[i],
				Signal:    signal[i],
				Histogram: line[i] - signal[i],
			},
		}
	}

	return values
}
