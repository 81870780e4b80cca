package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/stretchr/testify/suite"
)

type MovingAverageTestSuite struct {
	suite.Suite
	arena *arena.Arena
}

func TestMovingAverageSuite(t *testing.T) {
	suite.Run(t, new(MovingAverageTestSuite))
}

func (suite *MovingAverageTestSuite) SetupTest() {
	suite.arena = arena.New(64)
}

func (suite *MovingAverageTestSuite) TestSMAExample() {
	series := Compute(suite.arena, barsFromCloses(1, 2, 3, 4, 5), types.IndicatorTypeSMA, 3, 0, 0)
	suite.Require().NotNil(series)
	suite.Require().Equal(5, series.Len())

	suite.False(series.Values[0].Valid)
	suite.False(series.Values[1].Valid)

	for i, expected := range map[int]float64{2: 2, 3: 3, 4: 4} {
		suite.True(series.Values[i].Valid)
		suite.InDelta(expected, series.Values[i].Value, 1e-12)
	}
}

func (suite *MovingAverageTestSuite) TestWarmupBoundaries() {
	bars := barsFromCloses(rampCloses(10, 0.5, 20)...)

	for _, indicatorType := range []types.IndicatorType{types.IndicatorTypeSMA, types.IndicatorTypeEMA, types.IndicatorTypeWMA} {
		for _, period := range []int{1, 2, 5, 20} {
			series := Compute(suite.arena, bars, indicatorType, period, 0, 0)
			suite.Require().NotNil(series)

			for i, value := range series.Values {
				suite.Equal(i >= period-1, value.Valid, "%s(%d) index %d", indicatorType, period, i)
			}
		}
	}
}

func (suite *MovingAverageTestSuite) TestPeriodLongerThanSeries() {
	series := Compute(suite.arena, barsFromCloses(1, 2, 3), types.IndicatorTypeEMA, 5, 0, 0)
	suite.Require().NotNil(series)

	for _, value := range series.Values {
		suite.False(value.Valid)
	}
}

func (suite *MovingAverageTestSuite) TestEMAPeriodOneIsIdentity() {
	closes := []float64{3, 7, 1, 9, 4, 4.5}
	series := Compute(suite.arena, barsFromCloses(closes...), types.IndicatorTypeEMA, 1, 0, 0)
	suite.Require().NotNil(series)

	for i, c := range closes {
		suite.True(series.Values[i].Valid)
		suite.InDelta(c, series.Values[i].Value, 1e-12)
	}
}

func (suite *MovingAverageTestSuite) TestEMARecurrence() {
	closes := []float64{2, 4, 6, 8, 10, 12}
	series := Compute(suite.arena, barsFromCloses(closes...), types.IndicatorTypeEMA, 3, 0, 0)
	suite.Require().NotNil(series)

	// seed SMA(2,4,6) = 4, k = 0.5
	suite.InDelta(4.0, series.Values[2].Value, 1e-12)
	suite.InDelta(6.0, series.Values[3].Value, 1e-12)
	suite.InDelta(8.0, series.Values[4].Value, 1e-12)
	suite.InDelta(10.0, series.Values[5].Value, 1e-12)
}

func (suite *MovingAverageTestSuite) TestWMA() {
	series := Compute(suite.arena, barsFromCloses(1, 2, 3, 4), types.IndicatorTypeWMA, 3, 0, 0)
	suite.Require().NotNil(series)

	// (3*3 + 2*2 + 1*1) / 6
	suite.InDelta(14.0/6.0, series.Values[2].Value, 1e-12)
	// (4*3 + 3*2 + 2*1) / 6
	suite.InDelta(20.0/6.0, series.Values[3].Value, 1e-12)
}

func (suite *MovingAverageTestSuite) TestConstantSeriesConverges() {
	bars := barsFromCloses(constantCloses(42.5, 30)...)

	for _, indicatorType := range []types.IndicatorType{types.IndicatorTypeSMA, types.IndicatorTypeEMA, types.IndicatorTypeWMA} {
		series := Compute(suite.arena, bars, indicatorType, 7, 0, 0)
		suite.Require().NotNil(series)

		for i := 6; i < len(bars); i++ {
			suite.InDelta(42.5, series.Values[i].Value, 1e-9, "%s index %d", indicatorType, i)
		}
	}
}
