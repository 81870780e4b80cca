package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-kernel/internal/version"
	"github.com/urfave/cli/v3"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "argo-backtest",
		Usage:   "Run rule-based strategies over historical bars",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Backtest one or more strategy files over a set of data files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the engine configuration `FILE`",
						Sources:  cli.EnvVars("ARGO_CONFIG"),
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "strategy",
						Aliases:  []string{"s"},
						Usage:    "Path to a strategy YAML file, may be repeated",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Glob of CSV or Parquet bar files (e.g. data/*.parquet)",
						Sources:  cli.EnvVars("ARGO_DATA"),
						Required: true,
					},
					&cli.StringFlag{
						Name:    "results",
						Aliases: []string{"r"},
						Usage:   "Output directory, cleared before the run",
						Value:   "results",
						Sources: cli.EnvVars("ARGO_RESULTS"),
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Hide the progress bars",
					},
				},
				Action: runAction,
			},
			{
				Name:  "schema",
				Usage: "Print or write the JSON schema of the engine config or of strategy files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Schema to generate: engine or strategy",
						Value: schemaKindEngine,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the schema to `FILE` instead of stdout",
					},
				},
				Action: schemaAction,
			},
		},
	}
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
