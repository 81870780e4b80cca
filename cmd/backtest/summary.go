package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-kernel/internal/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

var summaryHeaders = []string{
	"Strategy", "Code", "Bars", "Trades", "Win rate", "Return", "Buy & hold", "Sharpe", "Max DD", "Final equity",
}

// renderSummary formats one table row per run.
func renderSummary(results []types.BacktestStats) string {
	if len(results) == 0 {
		return faintStyle.Render("No runs produced results.")
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, summaryRow(r))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Backtest summary (%d runs)", len(results))))
	b.WriteString("\n")
	b.WriteString(t.Render())

	return b.String()
}

func summaryRow(r types.BacktestStats) []string {
	return []string{
		r.Strategy,
		r.Code,
		fmt.Sprintf("%d", r.Bars),
		fmt.Sprintf("%d", r.Metrics.NumberOfTrades),
		formatPercent(r.Metrics.WinRate),
		formatPercent(r.Metrics.TotalReturn),
		formatPercent(r.BuyAndHoldReturn),
		fmt.Sprintf("%.2f", r.Metrics.SharpeRatio),
		formatPercent(r.Metrics.MaxDrawdown),
		fmt.Sprintf("%.2f", r.FinalEquity),
	}
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}
