package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kernel/internal/logger"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"go.uber.org/zap"
)

// Accepted source column names, first match wins. Date, code and the four
// prices are required.
var columnAliases = map[string][]string{
	"date":     {"date", "time", "timestamp", "datetime"},
	"code":     {"code", "symbol", "ticker"},
	"exchange": {"exchange", "market"},
	"open":     {"open"},
	"high":     {"high"},
	"low":      {"low"},
	"close":    {"close"},
	"volume":   {"volume", "vol"},
}

var optionalColumns = map[string]string{
	"exchange": "''",
	"volume":   "0",
}

var columnCasts = map[string]string{
	"date":     "TIMESTAMP",
	"code":     "VARCHAR",
	"exchange": "VARCHAR",
	"open":     "DOUBLE",
	"high":     "DOUBLE",
	"low":      "DOUBLE",
	"close":    "DOUBLE",
	"volume":   "DOUBLE",
}

var barColumns = []string{"date", "code", "exchange", "open", "high", "low", "close", "volume"}

// DuckDBDataSource reads bars from CSV or Parquet files through DuckDB. The
// loaded file is exposed as the market_data view with normalized columns.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource opens a DuckDB database at path (empty for in-memory). This is
// distinct from Initialize, which points the source at a bar file.
func NewDataSource(path string, log *logger.Logger) (DataSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(errors.ErrCodeDataNotFound, err, "bar file %s not found", path)
	}

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS market_data; DROP VIEW IF EXISTS market_data_raw;`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing views", err)
	}

	reader := "read_parquet"
	if format == FormatCSV {
		reader = "read_csv_auto"
	}

	// squirrel does not support CREATE VIEW
	raw := fmt.Sprintf(`CREATE VIEW market_data_raw AS SELECT * FROM %s('%s')`, reader, strings.ReplaceAll(path, "'", "''"))
	if _, err := d.db.Exec(raw); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read %s", path)
	}

	projection, err := d.normalizedProjection()
	if err != nil {
		return err
	}

	if _, err := d.db.Exec(`CREATE VIEW market_data AS SELECT ` + projection + ` FROM market_data_raw`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create market_data view", err)
	}

	return nil
}

// normalizedProjection maps the source columns onto barColumns.
func (d *DuckDBDataSource) normalizedProjection() (string, error) {
	rows, err := d.sq.
		Select("column_name").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_name": "market_data_raw"}).
		RunWith(d.db).
		Query()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeQueryFailed, "failed to describe bar file", err)
	}
	defer rows.Close()

	available := make(map[string]string)

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan column name", err)
		}

		available[strings.ToLower(name)] = name
	}

	if err := rows.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeQueryFailed, "error iterating columns", err)
	}

	expressions := make([]string, 0, len(barColumns))

	for _, column := range barColumns {
		source, found := "", false

		for _, alias := range columnAliases[column] {
			if name, ok := available[alias]; ok {
				source, found = quoteIdentifier(name), true

				break
			}
		}

		if !found {
			fallback, ok := optionalColumns[column]
			if !ok {
				return "", errors.Newf(errors.ErrCodeUnsupportedDataFormat, "bar file has no %s column", column)
			}

			source = fallback
		}

		expression := fmt.Sprintf("CAST(%s AS %s)", source, columnCasts[column])
		if fallback, ok := optionalColumns[column]; ok && found {
			expression = fmt.Sprintf("COALESCE(%s, %s)", expression, fallback)
		}

		expressions = append(expressions, expression+" AS "+column)
	}

	return strings.Join(expressions, ", "), nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	builder := d.filter(d.sq.Select("COUNT(*)").From("market_data"), Query{Start: start, End: end})

	var count int
	if err := builder.RunWith(d.db).QueryRow().Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Codes implements DataSource.
func (d *DuckDBDataSource) Codes() ([]string, error) {
	rows, err := d.sq.
		Select("DISTINCT code").
		From("market_data").
		OrderBy("code ASC").
		RunWith(d.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query codes", err)
	}
	defer rows.Close()

	codes := []string{}

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan code", err)
		}

		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating codes", err)
	}

	return codes, nil
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool) {
	return func(yield func(types.Bar, error) bool) {
		d.logger.Debug("Reading all bars from DuckDB")

		rows, err := d.barQuery(Query{Start: start, End: end})
		if err != nil {
			yield(types.Bar{}, err)

			return
		}
		defer rows.Close()

		for rows.Next() {
			bar, err := scanBar(rows)
			if err != nil {
				yield(types.Bar{}, err)

				return
			}

			if !yield(bar, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(types.Bar{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating bars", err))
		}
	}
}

// ReadBars implements DataSource.
func (d *DuckDBDataSource) ReadBars(query Query) ([]types.Bar, error) {
	rows, err := d.barQuery(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bars := make([]types.Bar, 0, 256)

	for rows.Next() {
		bar, err := scanBar(rows)
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating bars", err)
	}

	return bars, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func (d *DuckDBDataSource) barQuery(query Query) (*sql.Rows, error) {
	var builder squirrel.SelectBuilder

	if query.Interval.IsSome() {
		minutes, err := getIntervalMinutes(query.Interval.Unwrap())
		if err != nil {
			return nil, err
		}

		bucket := fmt.Sprintf("time_bucket(INTERVAL '%d minutes', date)", minutes)
		builder = d.sq.
			Select(
				bucket+" AS bucket", "code", "first(exchange)",
				"arg_min(open, date)", "max(high)", "min(low)", "arg_max(close, date)", "sum(volume)",
			).
			From("market_data").
			GroupBy(bucket, "code").
			OrderBy("code ASC", "bucket ASC")
	} else {
		builder = d.sq.
			Select(barColumns...).
			From("market_data").
			OrderBy("code ASC", "date ASC")
	}

	rows, err := d.filter(builder, query).RunWith(d.db).Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}

	return rows, nil
}

func (d *DuckDBDataSource) filter(builder squirrel.SelectBuilder, query Query) squirrel.SelectBuilder {
	if query.Code.IsSome() {
		builder = builder.Where(squirrel.Eq{"code": query.Code.Unwrap()})
	}

	if query.Start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"date": query.Start.Unwrap()})
	}

	if query.End.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"date": query.End.Unwrap()})
	}

	return builder
}

func scanBar(rows *sql.Rows) (types.Bar, error) {
	var bar types.Bar

	err := rows.Scan(&bar.Date, &bar.Code, &bar.Exchange, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume)
	if err != nil {
		return types.Bar{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
	}

	return bar, nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
