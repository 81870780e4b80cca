package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kernel/internal/arena"
	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine"
	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-kernel/internal/logger"
	"github.com/rxtech-lab/argo-kernel/internal/metrics"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"github.com/rxtech-lab/argo-kernel/pkg/strategy"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// StatsFileName is the per-run summary written next to the parquet exports.
const StatsFileName = "stats.yaml"

type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	strategies    []types.Strategy
	dataPaths     []string
	resultsFolder string
	log           *logger.Logger
	state         *BacktestState
	datasource    datasource.DataSource
	arena         *arena.Arena
	results       []types.BacktestStats
}

func NewBacktestEngineV1() engine.Engine {
	return &BacktestEngineV1{
		config:        EmptyConfig(),
		strategies:    nil,
		dataPaths:     nil,
		resultsFolder: "",
		log:           logger.NewNopLogger(),
		state:         nil,
		datasource:    nil,
		arena:         nil,
		results:       nil,
	}
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	b.config = EmptyConfig()

	if err := yaml.Unmarshal([]byte(config), &b.config); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse engine config", err)
	}

	if err := b.config.Validate(); err != nil {
		return err
	}

	log, err := logger.NewLoggerWithLevel(b.config.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to create logger", err)
	}

	b.log = log

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_capital", b.config.InitialCapital),
		zap.String("broker", string(b.config.Broker)),
		zap.Bool("allow_short", b.config.AllowShort),
	)

	if b.state != nil {
		_ = b.state.Close()
	}

	b.state, err = NewBacktestState(b.log)
	if err != nil {
		return err
	}

	if err := b.state.Initialize(); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to initialize state", err)
	}

	b.arena = arena.New(b.config.ArenaChunkSize)

	return nil
}

// LoadStrategy implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategy(s types.Strategy) error {
	if err := ValidateStrategy(s); err != nil {
		return err
	}

	b.strategies = append(b.strategies, s)
	b.log.Debug("Strategy loaded",
		zap.String("strategy", s.Name),
		zap.Int("total_strategies", len(b.strategies)),
	)

	return nil
}

// LoadStrategyFromFile implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategyFromFile(strategyPath string) error {
	s, err := strategy.LoadFile(strategyPath)
	if err != nil {
		return err
	}

	return b.LoadStrategy(s)
}

// LoadStrategyFromBytes implements engine.Engine.
func (b *BacktestEngineV1) LoadStrategyFromBytes(strategyBytes []byte) error {
	s, err := strategy.Load(strategyBytes)
	if err != nil {
		return err
	}

	return b.LoadStrategy(s)
}

// SetDataPath implements engine.Engine.
func (b *BacktestEngineV1) SetDataPath(path string) error {
	// use glob to get all the files that match the path
	files, err := filepath.Glob(path)
	if err != nil {
		b.log.Error("Failed to set data path",
			zap.String("path", path),
			zap.Error(err),
		)

		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid data path pattern", err)
	}

	absolutePaths := make([]string, len(files))

	for i, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to resolve %s", file)
		}

		absolutePaths[i] = absPath
	}

	b.dataPaths = absolutePaths
	b.log.Debug("Data paths set",
		zap.Strings("files", absolutePaths),
	)

	return nil
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder
	b.log.Debug("Results folder set",
		zap.String("folder", folder),
	)

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(dataSource datasource.DataSource) error {
	b.datasource = dataSource

	return nil
}

// Results implements engine.Engine.
func (b *BacktestEngineV1) Results() []types.BacktestStats {
	return b.results
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (runErr error) {
	if callbacks.OnBacktestEnd != nil {
		defer func() {
			(*callbacks.OnBacktestEnd)(runErr)
		}()
	}

	if err := b.preRunCheck(); err != nil {
		return err
	}

	if err := b.prepareResultsFolder(); err != nil {
		return err
	}

	b.results = nil

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(len(b.strategies), len(b.dataPaths)); err != nil {
			return err
		}
	}

	for strategyIndex, s := range b.strategies {
		if callbacks.OnStrategyStart != nil {
			if err := (*callbacks.OnStrategyStart)(strategyIndex, s.Name, len(b.strategies)); err != nil {
				return err
			}
		}

		for dataFileIndex, dataPath := range b.dataPaths {
			if err := b.runDataFile(ctx, s, dataFileIndex, dataPath, callbacks); err != nil {
				return err
			}
		}

		if callbacks.OnStrategyEnd != nil {
			(*callbacks.OnStrategyEnd)(strategyIndex, s.Name)
		}
	}

	return nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return schema, nil
}

func (b *BacktestEngineV1) runDataFile(ctx context.Context, s types.Strategy, dataFileIndex int, dataPath string, callbacks engine.LifecycleCallbacks) error {
	if err := b.datasource.Initialize(dataPath); err != nil {
		return err
	}

	bars, err := b.datasource.ReadBars(b.barQuery())
	if err != nil {
		return err
	}

	series := datasource.GroupByCode(bars)
	if len(series) == 0 {
		b.log.Warn("No bars in data file for the configured window",
			zap.String("data", dataPath),
		)

		return nil
	}

	for _, codeSeries := range series {
		// runs are the unit of cancellation
		if err := ctx.Err(); err != nil {
			return err
		}

		runID := uuid.New().String()

		if callbacks.OnRunStart != nil {
			if err := (*callbacks.OnRunStart)(runID, dataFileIndex, dataPath, codeSeries.Code, len(codeSeries.Bars)); err != nil {
				return err
			}
		}

		resultFolderPath := getResultFolder(b, s.Name, dataPath, codeSeries.Code)

		stats, err := b.runCode(runID, s, dataPath, codeSeries, resultFolderPath, callbacks.OnProcessData)
		if err != nil {
			return err
		}

		b.results = append(b.results, stats)

		if callbacks.OnRunEnd != nil {
			(*callbacks.OnRunEnd)(dataFileIndex, dataPath, resultFolderPath, stats)
		}
	}

	return nil
}

func (b *BacktestEngineV1) runCode(runID string, s types.Strategy, dataPath string, series datasource.Series, resultFolderPath string, onProcessData *engine.OnProcessDataCallback) (types.BacktestStats, error) {
	defer b.arena.Reset()

	// trades and equity of a previous, possibly aborted, run
	if err := b.state.Cleanup(); err != nil {
		return types.BacktestStats{}, err
	}

	var onBar OnBarCallback
	if onProcessData != nil {
		onBar = OnBarCallback(*onProcessData)
	}

	simulator, err := NewSimulator(s, SimulatorOptions{
		InitialCapital: b.config.InitialCapital,
		Costs:          NewCostModel(b.config.CommissionFee(), b.config.SlippagePct),
		AllowShort:     b.config.AllowShort,
		Recorder:       b.state,
		Logger:         b.log,
		OnBar:          onBar,
	})
	if err != nil {
		return types.BacktestStats{}, err
	}

	b.log.Info("Running strategy",
		zap.String("run_id", runID),
		zap.String("strategy", s.Name),
		zap.String("code", series.Code),
		zap.String("data", dataPath),
		zap.String("result", resultFolderPath),
	)

	portfolio, err := simulator.Run(b.arena, series.Bars)
	if err != nil {
		if errors.IsInvariantViolation(err) {
			b.log.Error("Accounting invariant violated",
				zap.String("run_id", runID),
				zap.Error(err),
			)
		}

		return types.BacktestStats{}, err
	}

	stats := b.buildStats(runID, s, dataPath, series, portfolio, resultFolderPath)

	if err := b.writeResults(resultFolderPath, stats); err != nil {
		return types.BacktestStats{}, err
	}

	return stats, nil
}

func (b *BacktestEngineV1) buildStats(runID string, s types.Strategy, dataPath string, series datasource.Series, portfolio *types.Portfolio, resultFolderPath string) types.BacktestStats {
	openPositions := make([]types.Position, 0, len(portfolio.Positions))
	for _, position := range portfolio.Positions {
		openPositions = append(openPositions, position)
	}

	finalEquity := b.config.InitialCapital
	if len(portfolio.EquityCurve) > 0 {
		finalEquity = portfolio.LastEquity()
	}

	return types.BacktestStats{
		ID:               runID,
		Timestamp:        time.Now(),
		Strategy:         s.Name,
		Code:             series.Code,
		DataPath:         dataPath,
		Bars:             len(series.Bars),
		InitialCapital:   b.config.InitialCapital,
		FinalEquity:      finalEquity,
		FinalCash:        portfolio.Cash,
		OpenPositions:    openPositions,
		BuyAndHoldReturn: metrics.BuyAndHoldReturn(series.Bars),
		Metrics: metrics.Calculate(portfolio.Trades, portfolio.EquityCurve, metrics.Options{
			InitialCapital: b.config.InitialCapital,
			RiskFreeRate:   b.config.RiskFreeRate,
			PeriodsPerYear: b.config.GetPeriodsPerYear(),
		}),
		TradesFilePath: filepath.Join(resultFolderPath, TradesFileName),
		EquityFilePath: filepath.Join(resultFolderPath, EquityFileName),
	}
}

func (b *BacktestEngineV1) writeResults(resultFolderPath string, stats types.BacktestStats) error {
	if b.state == nil {
		return errors.New(errors.ErrCodeBacktestStateNil, "backtest state is nil")
	}

	if err := b.state.Write(resultFolderPath); err != nil {
		return err
	}

	if err := types.WriteBacktestStats(filepath.Join(resultFolderPath, StatsFileName), []types.BacktestStats{stats}); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to write stats", err)
	}

	return nil
}

func (b *BacktestEngineV1) barQuery() datasource.Query {
	query := datasource.Query{
		Code:     optional.None[string](),
		Start:    b.config.StartTime,
		End:      b.config.EndTime,
		Interval: optional.None[datasource.Interval](),
	}

	if b.config.Interval != "" {
		query.Interval = optional.Some(datasource.Interval(b.config.Interval))
	}

	return query
}

func (b *BacktestEngineV1) prepareResultsFolder() error {
	// remove results folder if it exists
	if _, err := os.Stat(b.resultsFolder); err == nil {
		if err := os.RemoveAll(b.resultsFolder); err != nil {
			return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to clean results folder", err)
		}
	}

	if err := os.MkdirAll(b.resultsFolder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create results folder", err)
	}

	return nil
}

func (b *BacktestEngineV1) preRunCheck() error {
	if b.state == nil || b.arena == nil {
		b.log.Error("Engine not initialized")

		return errors.New(errors.ErrCodeBacktestStateNil, "engine is not initialized")
	}

	if len(b.strategies) == 0 {
		b.log.Error("No strategies loaded")

		return errors.New(errors.ErrCodeBacktestNoStrategies, "no strategies loaded")
	}

	if len(b.dataPaths) == 0 {
		b.log.Error("No data paths loaded")

		return errors.New(errors.ErrCodeBacktestNoDataPaths, "no data paths loaded")
	}

	if b.resultsFolder == "" {
		b.log.Error("No results folder set")

		return errors.New(errors.ErrCodeBacktestConfigError, "no results folder set")
	}

	if b.datasource == nil {
		b.log.Error("No datasource set")

		return errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}

	return nil
}
