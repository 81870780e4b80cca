package types

// OperandType tags the variant of an Operand.
type OperandType string

const (
	OperandTypePrice     OperandType = "PRICE"
	OperandTypeConstant  OperandType = "CONSTANT"
	OperandTypeIndicator OperandType = "INDICATOR"
)

// Operand is a value source used by comparison and cross rules: a bar field,
// a literal, or a component of an indicator series.
type Operand struct {
	Type OperandType

	// PRICE
	Price PriceField

	// CONSTANT
	Constant float64

	// INDICATOR. Period, Param2 and Param3 identify the series; Field picks the
	// component (e.g. the upper Bollinger band) and is not part of the identity.
	Indicator IndicatorType
	Period    int
	Param2    int
	Param3    int
	Field     IndicatorField
}

// PriceOperand reads a column of the current bar.
func PriceOperand(field PriceField) Operand {
	return Operand{Type: OperandTypePrice, Price: field}
}

// ConstantOperand is a literal value.
func ConstantOperand(value float64) Operand {
	return Operand{Type: OperandTypeConstant, Constant: value}
}

// IndicatorOperand reads an indicator series. Extra params are Param2 and Param3
// in order; for Bollinger bands Param2 is the stddev multiplier times 100.
func IndicatorOperand(indicator IndicatorType, period int, params ...int) Operand {
	op := Operand{Type: OperandTypeIndicator, Indicator: indicator, Period: period}
	if len(params) > 0 {
		op.Param2 = params[0]
	}

	if len(params) > 1 {
		op.Param3 = params[1]
	}

	return op
}

// WithField returns a copy of the operand selecting a specific component.
func (o Operand) WithField(field IndicatorField) Operand {
	o.Field = field

	return o
}

// IsIndicator reports whether the operand reads an indicator series.
func (o Operand) IsIndicator() bool {
	return o.Type == OperandTypeIndicator
}
