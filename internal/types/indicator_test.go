package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type IndicatorTypesTestSuite struct {
	suite.Suite
}

func TestIndicatorTypesSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTypesTestSuite))
}

func (suite *IndicatorTypesTestSuite) TestSimpleField() {
	v := IndicatorValue{Kind: IndicatorValueSimple, Valid: true, Value: 42}

	got, ok := v.Field(FieldDefault)
	suite.True(ok)
	suite.Equal(42.0, got)

	_, ok = v.Field(FieldUpper)
	suite.False(ok)
}

func (suite *IndicatorTypesTestSuite) TestInvalidValueHasNoFields() {
	v := IndicatorValue{Kind: IndicatorValueSimple, Valid: false, Value: 42}

	_, ok := v.Field(FieldDefault)
	suite.False(ok)
}

func (suite *IndicatorTypesTestSuite) TestCompositeFields() {
	bb := IndicatorValue{Kind: IndicatorValueBollinger, Valid: true, Bollinger: BollingerValue{Upper: 3, Middle: 2, Lower: 1}}
	for field, expected := range map[IndicatorField]float64{FieldUpper: 3, FieldMiddle: 2, FieldDefault: 2, FieldLower: 1} {
		got, ok := bb.Field(field)
		suite.True(ok)
		suite.Equal(expected, got)
	}

	macd := IndicatorValue{Kind: IndicatorValueMACD, Valid: true, MACD: MACDValue{Line: 1.5, Signal: 1, Histogram: 0.5}}
	got, ok := macd.Field(FieldHistogram)
	suite.True(ok)
	suite.Equal(0.5, got)

	pivot := IndicatorValue{Kind: IndicatorValuePivot, Valid: true, Pivot: PivotValue{Pivot: 10, R3: 13, S3: 7}}
	got, ok = pivot.Field(FieldS3)
	suite.True(ok)
	suite.Equal(7.0, got)

	stoch := IndicatorValue{Kind: IndicatorValueStochastic, Valid: true, Stochastic: StochasticValue{K: 80, D: 70}}
	got, ok = stoch.Field(FieldD)
	suite.True(ok)
	suite.Equal(70.0, got)

	_, ok = stoch.Field(FieldUpper)
	suite.False(ok)
}

func (suite *IndicatorTypesTestSuite) TestSeriesAt() {
	var nilSeries *IndicatorSeries
	_, ok := nilSeries.At(0)
	suite.False(ok)
	suite.Equal(0, nilSeries.Len())

	s := &IndicatorSeries{Values: make([]IndicatorValue, 3)}
	_, ok = s.At(2)
	suite.True(ok)
	_, ok = s.At(3)
	suite.False(ok)
	_, ok = s.At(-1)
	suite.False(ok)
}

func (suite *IndicatorTypesTestSuite) TestRuleOperands() {
	sma3 := IndicatorOperand(IndicatorTypeSMA, 3)
	sma5 := IndicatorOperand(IndicatorTypeSMA, 5)
	rsi := IndicatorOperand(IndicatorTypeRSI, 14)

	rule := And(
		CrossAbove(sma3, sma5),
		Not(Between(rsi, ConstantOperand(30), ConstantOperand(70))),
		Consecutive(Above(PriceOperand(PriceFieldClose), sma5), 2),
	)

	operands := rule.Operands()
	suite.Len(operands, 7)
	suite.Equal(sma3, operands[0])
	suite.Equal(rsi, operands[2])
	suite.Equal(PriceOperand(PriceFieldClose), operands[5])

	suite.Nil((*Rule)(nil).Child())
	suite.Equal(RuleTypeBetween, rule.Children[1].Child().Type)
}

func (suite *IndicatorTypesTestSuite) TestIndicatorOperandParams() {
	bb := IndicatorOperand(IndicatorTypeBollinger, 20, 200).WithField(FieldUpper)
	suite.Equal(20, bb.Period)
	suite.Equal(200, bb.Param2)
	suite.Equal(0, bb.Param3)
	suite.Equal(FieldUpper, bb.Field)
	suite.True(bb.IsIndicator())
	suite.False(ConstantOperand(1).IsIndicator())
}
