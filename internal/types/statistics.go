package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Metrics summarizes the performance of one backtest run.
type Metrics struct {
	// Total return as a fraction of initial equity (0.1 = +10%).
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// Compound annual growth rate over the calendar span of the equity curve.
	AnnualizedReturn float64 `yaml:"annualized_return" json:"annualized_return"`
	// Annualized Sharpe ratio of per-bar returns in excess of the risk-free rate.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// Annualized Sortino ratio, penalizing only downside deviation.
	SortinoRatio float64 `yaml:"sortino_ratio" json:"sortino_ratio"`
	// Largest peak-to-trough decline as a fraction of the peak.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// Longest number of bars spent below a previous equity peak.
	MaxDrawdownDuration int `yaml:"max_drawdown_duration" json:"max_drawdown_duration"`

	NumberOfTrades        int `yaml:"number_of_trades" json:"number_of_trades"`
	NumberOfWinningTrades int `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	NumberOfLosingTrades  int `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	// Winning trades over all trades. A trade with zero pnl counts as losing.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// Sum of winning pnl over the absolute sum of losing pnl.
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`

	AverageWin   float64 `yaml:"average_win" json:"average_win"`
	AverageLoss  float64 `yaml:"average_loss" json:"average_loss"`
	LargestWin   float64 `yaml:"largest_win" json:"largest_win"`
	LargestLoss  float64 `yaml:"largest_loss" json:"largest_loss"`
	TotalFees    float64 `yaml:"total_fees" json:"total_fees"`
	RealizedPnL  float64 `yaml:"realized_pnl" json:"realized_pnl"`
	AverageTrade float64 `yaml:"average_trade" json:"average_trade"`
	// Mean holding time of closed trades.
	AverageTradeDuration time.Duration `yaml:"average_trade_duration" json:"average_trade_duration"`
}

// BacktestStats is the persisted summary of one strategy run over one data file.
type BacktestStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Strategy  string    `yaml:"strategy" json:"strategy"`
	Code      string    `yaml:"code" json:"code"`
	DataPath  string    `yaml:"data_path" json:"data_path"`
	Bars      int       `yaml:"bars" json:"bars"`

	InitialCapital float64    `yaml:"initial_capital" json:"initial_capital"`
	FinalEquity    float64    `yaml:"final_equity" json:"final_equity"`
	FinalCash      float64    `yaml:"final_cash" json:"final_cash"`
	OpenPositions  []Position `yaml:"open_positions" json:"open_positions"`
	// Buy-and-hold return of the first code over the same bars, as a fraction.
	BuyAndHoldReturn float64 `yaml:"buy_and_hold_return" json:"buy_and_hold_return"`
	Metrics          Metrics `yaml:"metrics" json:"metrics"`

	TradesFilePath string `yaml:"trades_file_path" json:"trades_file_path"`
	EquityFilePath string `yaml:"equity_file_path" json:"equity_file_path"`
}

// WriteBacktestStats writes the stats as YAML to path.
func WriteBacktestStats(path string, stats []BacktestStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest stats to file: %w", err)
	}

	return nil
}

// ReadBacktestStats reads stats previously written by WriteBacktestStats.
func ReadBacktestStats(path string) ([]BacktestStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backtest stats: %w", err)
	}

	var stats []BacktestStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backtest stats: %w", err)
	}

	return stats, nil
}
