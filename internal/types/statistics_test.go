package types

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type StatisticsTestSuite struct {
	suite.Suite
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) TestWriteAndReadBacktestStats() {
	stats := []BacktestStats{
		{
			ID:             "run-1",
			Timestamp:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Strategy:       "sma_cross",
			Code:           "AAPL",
			Bars:           250,
			InitialCapital: 100000,
			FinalEquity:    110000,
			FinalCash:      110000,
			Metrics: Metrics{
				TotalReturn:          0.1,
				NumberOfTrades:       4,
				WinRate:              0.5,
				AverageTradeDuration: 36 * time.Hour,
			},
		},
	}

	path := filepath.Join(suite.T().TempDir(), "stats.yaml")
	suite.Require().NoError(WriteBacktestStats(path, stats))

	read, err := ReadBacktestStats(path)
	suite.Require().NoError(err)
	suite.Require().Len(read, 1)
	suite.Equal("sma_cross", read[0].Strategy)
	suite.Equal(0.1, read[0].Metrics.TotalReturn)
	suite.Equal(36*time.Hour, read[0].Metrics.AverageTradeDuration)
	suite.True(stats[0].Timestamp.Equal(read[0].Timestamp))
}

func (suite *StatisticsTestSuite) TestWriteToInvalidPath() {
	err := WriteBacktestStats(filepath.Join(suite.T().TempDir(), "missing", "stats.yaml"), nil)
	suite.Error(err)
}

func (suite *StatisticsTestSuite) TestReadMissingFile() {
	_, err := ReadBacktestStats(filepath.Join(suite.T().TempDir(), "nope.yaml"))
	suite.Error(err)
}
