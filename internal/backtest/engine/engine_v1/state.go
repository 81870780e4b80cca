package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-kernel/internal/logger"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"go.uber.org/zap"
)

const (
	TradesFileName = "trades.parquet"
	EquityFileName = "equity.parquet"
)

// BacktestState keeps the trades and the equity curve of the current run in an
// in-memory DuckDB database and exports them as Parquet. It implements
// Recorder.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

var _ Recorder = (*BacktestState)(nil)

// NewBacktestState opens the in-memory database. Call Initialize before use.
func NewBacktestState(log *logger.Logger) (*BacktestState, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to open result database", err)
	}

	return &BacktestState{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the result tables.
func (b *BacktestState) Initialize() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			code TEXT,
			direction TEXT,
			quantity DOUBLE,
			entry_price DOUBLE,
			entry_date TIMESTAMP,
			exit_price DOUBLE,
			exit_date TIMESTAMP,
			pnl DOUBLE,
			fees DOUBLE,
			net_pnl DOUBLE,
			exit_reason TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create trades table", err)
	}

	_, err = b.db.Exec(`
		CREATE TABLE IF NOT EXISTS equity (
			code TEXT,
			date TIMESTAMP,
			equity DOUBLE,
			cash DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBacktestInitFailed, "failed to create equity table", err)
	}

	return nil
}

// RecordTrade stores a closed trade.
func (b *BacktestState) RecordTrade(trade types.ClosedTrade) error {
	_, err := b.sq.
		Insert("trades").
		Columns(
			"id", "code", "direction", "quantity", "entry_price", "entry_date",
			"exit_price", "exit_date", "pnl", "fees", "net_pnl", "exit_reason",
		).
		Values(
			trade.ID, trade.Code, string(trade.Direction), trade.Quantity, trade.EntryPrice, trade.EntryDate,
			trade.ExitPrice, trade.ExitDate, trade.PnL, trade.Fees, trade.NetPnL(), string(trade.ExitReason),
		).
		RunWith(b.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// RecordEquity stores one equity sample of code.
func (b *BacktestState) RecordEquity(code string, point types.EquityPoint) error {
	_, err := b.sq.
		Insert("equity").
		Columns("code", "date", "equity", "cash").
		Values(code, point.Date, point.Equity, point.Cash).
		RunWith(b.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert equity point: %w", err)
	}

	return nil
}

// GetAllTrades returns the stored trades ordered by exit date.
func (b *BacktestState) GetAllTrades() ([]types.ClosedTrade, error) {
	rows, err := b.sq.
		Select(
			"id", "code", "direction", "quantity", "entry_price", "entry_date",
			"exit_price", "exit_date", "pnl", "fees", "exit_reason",
		).
		From("trades").
		OrderBy("exit_date ASC", "entry_date ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	trades := []types.ClosedTrade{}

	for rows.Next() {
		var (
			trade     types.ClosedTrade
			direction string
			reason    string
		)

		err := rows.Scan(
			&trade.ID,
			&trade.Code,
			&direction,
			&trade.Quantity,
			&trade.EntryPrice,
			&trade.EntryDate,
			&trade.ExitPrice,
			&trade.ExitDate,
			&trade.PnL,
			&trade.Fees,
			&reason,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trade.Direction = types.Direction(direction)
		trade.ExitReason = types.ExitReason(reason)
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	return trades, nil
}

// GetEquityCurve returns the stored equity samples of code in date order.
func (b *BacktestState) GetEquityCurve(code string) ([]types.EquityPoint, error) {
	rows, err := b.sq.
		Select("date", "equity", "cash").
		From("equity").
		Where(squirrel.Eq{"code": code}).
		OrderBy("date ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query equity", err)
	}
	defer rows.Close()

	points := []types.EquityPoint{}

	for rows.Next() {
		var point types.EquityPoint
		if err := rows.Scan(&point.Date, &point.Equity, &point.Cash); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan equity point", err)
		}

		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating equity", err)
	}

	return points, nil
}

// Cleanup drops everything recorded so far and recreates the empty tables.
func (b *BacktestState) Cleanup() error {
	// squirrel has no DROP
	_, err := b.db.Exec(`
		DROP TABLE IF EXISTS trades;
		DROP TABLE IF EXISTS equity;
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to cleanup tables", err)
	}

	return b.Initialize()
}

// Write exports the trades and the equity curve as Parquet files under path.
func (b *BacktestState) Write(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeResultWriteFailed, "failed to create result directory", err)
	}

	tradesPath := filepath.Join(path, TradesFileName)
	if err := b.copyTo("trades", tradesPath); err != nil {
		return err
	}

	equityPath := filepath.Join(path, EquityFileName)
	if err := b.copyTo("equity", equityPath); err != nil {
		return err
	}

	b.logger.Debug("Exported backtest results",
		zap.String("trades", tradesPath),
		zap.String("equity", equityPath),
	)

	return nil
}

// Close releases the database.
func (b *BacktestState) Close() error {
	return b.db.Close()
}

func (b *BacktestState) copyTo(table string, path string) error {
	// COPY is not expressible with squirrel
	query := fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, table, escapeLiteral(path))
	if _, err := b.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeResultWriteFailed, err, "failed to export %s to parquet", table)
	}

	return nil
}

func escapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
