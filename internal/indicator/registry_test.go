package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
	registry IndicatorRegistry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = NewIndicatorRegistry()
}

func (suite *RegistryTestSuite) TestRegisterIndicator() {
	suite.Require().NoError(suite.registry.RegisterIndicator(NewSMA()))

	indicator, err := suite.registry.GetIndicator(types.IndicatorTypeSMA)
	suite.Require().NoError(err)
	suite.Equal(types.IndicatorTypeSMA, indicator.Name())

	err = suite.registry.RegisterIndicator(NewSMA())
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetMissingIndicator() {
	_, err := suite.registry.GetIndicator(types.IndicatorTypeRSI)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestRemoveIndicator() {
	suite.Require().NoError(suite.registry.RegisterIndicator(NewEMA()))
	suite.Require().NoError(suite.registry.RemoveIndicator(types.IndicatorTypeEMA))
	suite.Empty(suite.registry.ListIndicators())

	err := suite.registry.RemoveIndicator(types.IndicatorTypeEMA)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestDefaultRegistryListsAllIndicators() {
	suite.ElementsMatch([]types.IndicatorType{
		types.IndicatorTypeSMA,
		types.IndicatorTypeEMA,
		types.IndicatorTypeWMA,
		types.IndicatorTypeRSI,
		types.IndicatorTypeBollinger,
		types.IndicatorTypeATR,
		types.IndicatorTypePivot,
		types.IndicatorTypeMACD,
		types.IndicatorTypeStochastic,
	}, NewDefaultRegistry().ListIndicators())
}

func (suite *RegistryTestSuite) TestComputeInvalidInput() {
	a := arena.New(0)
	bars := barsFromCloses(1, 2, 3)

	suite.Nil(Compute(nil, bars, types.IndicatorTypeSMA, 2, 0, 0))
	suite.Nil(Compute(a, nil, types.IndicatorTypeSMA, 2, 0, 0))
	suite.Nil(Compute(a, []types.Bar{}, types.IndicatorTypeSMA, 2, 0, 0))
	suite.Nil(Compute(a, bars, types.IndicatorTypeSMA, 0, 0, 0))
	suite.Nil(Compute(a, bars, types.IndicatorTypeRSI, -3, 0, 0))
	suite.Nil(Compute(a, bars, types.IndicatorTypeBollinger, 2, -100, 0))
	suite.Nil(Compute(a, bars, types.IndicatorTypeMACD, 2, -1, 0))
}

func (suite *RegistryTestSuite) TestComputeUnsupportedType() {
	suite.Nil(Compute(arena.New(0), barsFromCloses(1, 2, 3), types.IndicatorType("VWAP"), 2, 0, 0))
	suite.Nil(suite.registry.Compute(arena.New(0), barsFromCloses(1, 2, 3), NewKey(types.IndicatorTypeSMA, 2, 0, 0)))
}

func (suite *RegistryTestSuite) TestComputeUsesArena() {
	a := arena.New(0)
	series := Compute(a, barsFromCloses(1, 2, 3, 4), types.IndicatorTypeSMA, 2, 0, 0)
	suite.Require().NotNil(series)
	suite.Positive(a.Allocated())

	a.Reset()
	suite.Equal(0, a.Allocated())
	suite.Equal(uint64(1), a.Generation())
}
