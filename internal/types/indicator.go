package types

// IndicatorType tags the calculator that produced an indicator series.
type IndicatorType string

const (
	IndicatorTypeSMA        IndicatorType = "SMA"
	IndicatorTypeEMA        IndicatorType = "EMA"
	IndicatorTypeWMA        IndicatorType = "WMA"
	IndicatorTypeRSI        IndicatorType = "RSI"
	IndicatorTypeBollinger  IndicatorType = "BOLLINGER"
	IndicatorTypeATR        IndicatorType = "ATR"
	IndicatorTypePivot      IndicatorType = "PIVOT"
	IndicatorTypeMACD       IndicatorType = "MACD"
	IndicatorTypeStochastic IndicatorType = "STOCHASTIC"
)

// IndicatorValueKind tells which variant of IndicatorValue is populated.
type IndicatorValueKind int

const (
	IndicatorValueSimple IndicatorValueKind = iota
	IndicatorValueBollinger
	IndicatorValuePivot
	IndicatorValueMACD
	IndicatorValueStochastic
)

// IndicatorField selects one component of a multi-valued indicator.
// The empty field selects the variant's primary component.
type IndicatorField string

const (
	FieldDefault   IndicatorField = ""
	FieldValue     IndicatorField = "value"
	FieldUpper     IndicatorField = "upper"
	FieldMiddle    IndicatorField = "middle"
	FieldLower     IndicatorField = "lower"
	FieldPivot     IndicatorField = "pivot"
	FieldR1        IndicatorField = "r1"
	FieldR2        IndicatorField = "r2"
	FieldR3        IndicatorField = "r3"
	FieldS1        IndicatorField = "s1"
	FieldS2        IndicatorField = "s2"
	FieldS3        IndicatorField = "s3"
	FieldMACD      IndicatorField = "macd"
	FieldSignal    IndicatorField = "signal"
	FieldHistogram IndicatorField = "histogram"
	FieldK         IndicatorField = "k"
	FieldD         IndicatorField = "d"
)

type BollingerValue struct {
	Upper  float64
	Middle float64
	Lower  float64
}

type PivotValue struct {
	Pivot float64
	R1    float64
	R2    float64
	R3    float64
	S1    float64
	S2    float64
	S3    float64
}

type MACDValue struct {
	Line      float64
	Signal    float64
	Histogram float64
}

type StochasticValue struct {
	K float64
	D float64
}

// IndicatorValue is one point of an indicator series. Kind selects which of the
// variant fields carries data; Valid is false while the indicator is warming up.
type IndicatorValue struct {
	Kind       IndicatorValueKind
	Valid      bool
	Value      float64
	Bollinger  BollingerValue
	Pivot      PivotValue
	MACD       MACDValue
	Stochastic StochasticValue
}

// Field reads one component of the value. It returns false when the value is
// invalid or the field does not belong to the variant.
func (v IndicatorValue) Field(field IndicatorField) (float64, bool) {
	if !v.Valid {
		return 0, false
	}

	switch v.Kind {
	case IndicatorValueSimple:
		if field == FieldDefault || field == FieldValue {
			return v.Value, true
		}
	case IndicatorValueBollinger:
		switch field {
		case FieldUpper:
			return v.Bollinger.Upper, true
		case FieldDefault, FieldMiddle:
			return v.Bollinger.Middle, true
		case FieldLower:
			return v.Bollinger.Lower, true
		}
	case IndicatorValuePivot:
		switch field {
		case FieldDefault, FieldPivot:
			return v.Pivot.Pivot, true
		case FieldR1:
			return v.Pivot.R1, true
		case FieldR2:
			return v.Pivot.R2, true
		case FieldR3:
			return v.Pivot.R3, true
		case FieldS1:
			return v.Pivot.S1, true
		case FieldS2:
			return v.Pivot.S2, true
		case FieldS3:
			return v.Pivot.S3, true
		}
	case IndicatorValueMACD:
		switch field {
		case FieldDefault, FieldMACD:
			return v.MACD.Line, true
		case FieldSignal:
			return v.MACD.Signal, true
		case FieldHistogram:
			return v.MACD.Histogram, true
		}
	case IndicatorValueStochastic:
		switch field {
		case FieldDefault, FieldK:
			return v.Stochastic.K, true
		case FieldD:
			return v.Stochastic.D, true
		}
	}

	return 0, false
}

// IndicatorSeries is an indicator computed over a bar series. Values is
// index-aligned 1:1 with the bars it was computed from.
type IndicatorSeries struct {
	Type   IndicatorType
	Period int
	Param2 int
	Param3 int
	Values []IndicatorValue
}

// Len returns the number of values in the series.
func (s *IndicatorSeries) Len() int {
	if s == nil {
		return 0
	}

	return len(s.Values)
}

// At returns the value at index i, or false when i is out of bounds.
func (s *IndicatorSeries) At(i int) (IndicatorValue, bool) {
	if s == nil || i < 0 || i >= len(s.Values) {
		return IndicatorValue{}, false
	}

	return s.Values[i], true
}
