package evaluator

import (
	"github.com/rxtech-lab/argo-kernel/internal/indicator"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// Resolve returns the value of an operand at bar index. The second result is
// false when the value cannot be confirmed: index out of bounds, unknown price
// field, missing series, or a warmup value.
func Resolve(operand types.Operand, bars []types.Bar, table *indicator.Table, index int) (float64, bool) {
	if index < 0 || index >= len(bars) {
		return 0, false
	}

	switch operand.Type {
	case types.OperandTypePrice:
		return bars[index].Field(operand.Price)
	case types.OperandTypeConstant:
		return operand.Constant, true
	case types.OperandTypeIndicator:
		key, err := indicator.OperandKey(&operand)
		if err != nil {
			return 0, false
		}

		series := table.Get(key)
		if series.IsNone() {
			return 0, false
		}

		value, ok := series.Unwrap().At(index)
		if !ok {
			return 0, false
		}

		return value.Field(operand.Field)
	default:
		return 0, false
	}
}

// resolvePair resolves both operands of a binary rule at index.
func resolvePair(left, right types.Operand, bars []types.Bar, table *indicator.Table, index int) (float64, float64, bool) {
	l, ok := Resolve(left, bars, table, index)
	if !ok {
		return 0, 0, false
	}

	r, ok := Resolve(right, bars, table, index)
	if !ok {
		return 0, 0, false
	}

	return l, r, true
}
