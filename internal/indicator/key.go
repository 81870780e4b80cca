package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

const (
	// DefaultBollingerMultiplier is the stddev multiplier times 100.
	DefaultBollingerMultiplier = 200
	DefaultMACDSlowPeriod      = 26
	DefaultMACDSignalPeriod    = 9
	DefaultStochasticDPeriod   = 3
)

// Key identifies one indicator series. Two operands that differ only in their
// field selector (e.g. the upper and lower Bollinger band) share a key.
type Key struct {
	Type   types.IndicatorType
	Period int
	Param2 int
	Param3 int
}

// NewKey builds a key with the defaults of the indicator type filled in and
// unused parameters cleared, so equal requests always produce equal keys.
func NewKey(indicatorType types.IndicatorType, period, param2, param3 int) Key {
	key := Key{Type: indicatorType, Period: period}

	switch indicatorType {
	case types.IndicatorTypeBollinger:
		key.Param2 = param2
		if key.Param2 == 0 {
			key.Param2 = DefaultBollingerMultiplier
		}
	case types.IndicatorTypeMACD:
		key.Param2 = param2
		if key.Param2 == 0 {
			key.Param2 = DefaultMACDSlowPeriod
		}

		key.Param3 = param3
		if key.Param3 == 0 {
			key.Param3 = DefaultMACDSignalPeriod
		}
	case types.IndicatorTypeStochastic:
		key.Param2 = param2
		if key.Param2 == 0 {
			key.Param2 = DefaultStochasticDPeriod
		}
	case types.IndicatorTypePivot:
		key.Period = 0
	}

	return key
}

// OperandKey returns the key of the series an indicator operand reads.
func OperandKey(operand *types.Operand) (Key, error) {
	if operand == nil {
		return Key{}, errors.New(errors.ErrCodeInvalidOperand, "operand is nil")
	}

	if !operand.IsIndicator() {
		return Key{}, errors.Newf(errors.ErrCodeInvalidOperand, "operand of type %s has no indicator key", operand.Type)
	}

	return NewKey(operand.Indicator, operand.Period, operand.Param2, operand.Param3), nil
}

// SeriesKey returns the key of an already computed series.
func SeriesKey(series *types.IndicatorSeries) Key {
	return NewKey(series.Type, series.Period, series.Param2, series.Param3)
}

// String renders the canonical textual form: SMA_20, MACD_12_26_9,
// BOLLINGER_20_200, STOCHASTIC_14_3 or PIVOT.
func (k Key) String() string {
	switch k.Type {
	case types.IndicatorTypePivot:
		return string(k.Type)
	case types.IndicatorTypeMACD:
		return fmt.Sprintf("%s_%d_%d_%d", k.Type, k.Period, k.Param2, k.Param3)
	case types.IndicatorTypeBollinger, types.IndicatorTypeStochastic:
		return fmt.Sprintf("%s_%d_%d", k.Type, k.Period, k.Param2)
	default:
		return fmt.Sprintf("%s_%d", k.Type, k.Period)
	}
}
