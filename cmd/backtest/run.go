package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-kernel/internal/logger"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/strategy"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

const (
	schemaKindEngine   = "engine"
	schemaKindStrategy = "strategy"
)

// runOptions are the resolved inputs of the run command.
type runOptions struct {
	ConfigPath     string
	StrategyPaths  []string
	DataPath       string
	ResultsFolder  string
	ShowProgress   bool
	ProgressWriter io.Writer
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	results, err := runBacktest(ctx, runOptions{
		ConfigPath:     cmd.String("config"),
		StrategyPaths:  cmd.StringSlice("strategy"),
		DataPath:       cmd.String("data"),
		ResultsFolder:  cmd.String("results"),
		ShowProgress:   !cmd.Bool("quiet"),
		ProgressWriter: os.Stderr,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("Backtest stopped by user")

			return nil
		}

		return err
	}

	fmt.Println(renderSummary(results))

	return nil
}

func runBacktest(ctx context.Context, options runOptions) ([]types.BacktestStats, error) {
	config, err := os.ReadFile(options.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	backtester := enginev1.NewBacktestEngineV1()
	if err := backtester.Initialize(string(config)); err != nil {
		return nil, err
	}

	for _, path := range options.StrategyPaths {
		if err := backtester.LoadStrategyFromFile(path); err != nil {
			return nil, fmt.Errorf("failed to load strategy %s: %w", path, err)
		}
	}

	ds, err := datasource.NewDataSource("", logger.NewNopLogger())
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if err := backtester.SetDataSource(ds); err != nil {
		return nil, err
	}

	if err := backtester.SetDataPath(options.DataPath); err != nil {
		return nil, err
	}

	if err := backtester.SetResultsFolder(options.ResultsFolder); err != nil {
		return nil, err
	}

	callbacks := engine.LifecycleCallbacks{}
	if options.ShowProgress {
		callbacks = progressCallbacks(options.ProgressWriter)
	}

	if err := backtester.Run(ctx, callbacks); err != nil {
		return nil, err
	}

	return backtester.Results(), nil
}

// progressCallbacks draws one progress bar per run.
func progressCallbacks(w io.Writer) engine.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onRunStart := engine.OnRunStartCallback(func(_ string, _ int, _ string, code string, totalBars int) error {
		bar = progressbar.NewOptions(totalBars,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(fmt.Sprintf("Backtesting %s", code)),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(w)
			}),
		)

		return nil
	})
	onProcessData := engine.OnProcessDataCallback(func(current int, _ int) error {
		if bar == nil {
			return nil
		}

		return bar.Set(current)
	})
	onRunEnd := engine.OnRunEndCallback(func(_ int, _ string, _ string, _ types.BacktestStats) {
		if bar != nil {
			_ = bar.Finish()
		}
	})

	return engine.LifecycleCallbacks{
		OnRunStart:    &onRunStart,
		OnProcessData: &onProcessData,
		OnRunEnd:      &onRunEnd,
	}
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := generateSchema(cmd.String("kind"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		fmt.Println(schema)

		return nil
	}

	if err := os.WriteFile(output, []byte(schema), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	fmt.Printf("Schema written to %s\n", output)

	return nil
}

func generateSchema(kind string) (string, error) {
	switch kind {
	case schemaKindEngine:
		return enginev1.NewBacktestEngineV1().GetConfigSchema()
	case schemaKindStrategy:
		return strategy.Schema()
	default:
		return "", fmt.Errorf("unknown schema kind %q, expected %s or %s", kind, schemaKindEngine, schemaKindStrategy)
	}
}
