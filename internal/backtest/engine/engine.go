package engine

import (
	"context"

	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error

// OnBacktestStartCallback is called when the entire backtest begins.
type OnBacktestStartCallback func(totalStrategies int, totalDataFiles int) error

// OnBacktestEndCallback is called when the entire backtest completes (always called via defer).
type OnBacktestEndCallback func(err error)

// OnStrategyStartCallback is called when a strategy iteration begins.
type OnStrategyStartCallback func(strategyIndex int, strategyName string, totalStrategies int) error

// OnStrategyEndCallback is called when a strategy iteration ends.
type OnStrategyEndCallback func(strategyIndex int, strategyName string)

// OnRunStartCallback is called when a strategy starts on one code of one data file.
// runID is a unique identifier for this run, generated before processing starts.
type OnRunStartCallback func(runID string, dataFileIndex int, dataFilePath string, code string, totalBars int) error

// OnRunEndCallback is called when a run finishes with its persisted stats.
type OnRunEndCallback func(dataFileIndex int, dataFilePath string, resultFolderPath string, stats types.BacktestStats)

// OnProcessDataCallback is called for each bar processed.
type OnProcessDataCallback func(current int, total int) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnStrategyStart *OnStrategyStartCallback
	OnStrategyEnd   *OnStrategyEndCallback
	OnRunStart      *OnRunStartCallback
	OnRunEnd        *OnRunEndCallback
	OnProcessData   *OnProcessDataCallback
}

//nolint:interfacebloat // Engine is a core interface that naturally requires multiple methods
type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// SetDataPath sets the market data files to run on. Accepts glob patterns
	// (e.g., "data/*.parquet"). A file may hold several codes; each code is
	// simulated separately.
	SetDataPath(path string) error
	// SetResultsFolder sets the output directory for saving backtest results.
	// Results are written to <folder>/<strategy>/[<start>_<end>/]<data file>/<code>.
	SetResultsFolder(folder string) error
	// LoadStrategy adds a strategy. Could be called multiple times to load multiple strategies.
	LoadStrategy(strategy types.Strategy) error
	// LoadStrategyFromFile loads a YAML strategy file.
	LoadStrategyFromFile(strategyPath string) error
	// LoadStrategyFromBytes loads a YAML strategy document.
	LoadStrategyFromBytes(strategyBytes []byte) error
	// Run runs every strategy over every data file.
	// The context is checked between runs and stops the backtest when cancelled.
	// Use LifecycleCallbacks to receive notifications at different phases of the backtest.
	Run(ctx context.Context, callbacks LifecycleCallbacks) error
	// SetDataSource sets the data source for the engine.
	SetDataSource(dataSource datasource.DataSource) error
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
	// Results returns the stats of every run of the last Run call.
	Results() []types.BacktestStats
}
