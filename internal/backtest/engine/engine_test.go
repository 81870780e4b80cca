package engine

import (
	"errors"
	"testing"

	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) TestOnProcessDataCallbackType() {
	var callback OnProcessDataCallback = func(current int, total int) error {
		return nil
	}

	suite.NotNil(callback)
	err := callback(1, 10)
	suite.NoError(err)
}

func (suite *EngineTestSuite) TestOnProcessDataCallbackWithProgress() {
	var progress []int
	callback := OnProcessDataCallback(func(current int, total int) error {
		progress = append(progress, current)
		return nil
	})

	for i := 1; i <= 5; i++ {
		err := callback(i, 5)
		suite.NoError(err)
	}

	suite.Equal([]int{1, 2, 3, 4, 5}, progress)
}

func (suite *EngineTestSuite) TestLifecycleCallbacksZeroValue() {
	var callbacks LifecycleCallbacks

	suite.Nil(callbacks.OnBacktestStart)
	suite.Nil(callbacks.OnBacktestEnd)
	suite.Nil(callbacks.OnStrategyStart)
	suite.Nil(callbacks.OnStrategyEnd)
	suite.Nil(callbacks.OnRunStart)
	suite.Nil(callbacks.OnRunEnd)
	suite.Nil(callbacks.OnProcessData)
}

func (suite *EngineTestSuite) TestRunCallbacksCarryStats() {
	var received []types.BacktestStats

	onRunEnd := OnRunEndCallback(func(_ int, _ string, _ string, stats types.BacktestStats) {
		received = append(received, stats)
	})
	onRunStart := OnRunStartCallback(func(runID string, _ int, _ string, code string, _ int) error {
		if code == "" {
			return errors.New("missing code")
		}

		return nil
	})

	callbacks := LifecycleCallbacks{
		OnRunStart: &onRunStart,
		OnRunEnd:   &onRunEnd,
	}

	suite.NoError((*callbacks.OnRunStart)("run-1", 0, "a.csv", "SPY", 10))
	suite.Error((*callbacks.OnRunStart)("run-2", 0, "a.csv", "", 10))

	(*callbacks.OnRunEnd)(0, "a.csv", "results/a", types.BacktestStats{ID: "run-1", Code: "SPY"})
	suite.Require().Len(received, 1)
	suite.Equal("SPY", received[0].Code)
}
