package datasource

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// Format is the file format of a bar file.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Interval is a bar resampling width.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

// Query selects bars. Unset fields do not filter.
type Query struct {
	Code  optional.Option[string]
	Start optional.Option[time.Time]
	End   optional.Option[time.Time]
	// Interval aggregates the source bars into wider buckets.
	Interval optional.Option[Interval]
}

// DataSource supplies bar series to the engine.
type DataSource interface {
	// Initialize loads the bar file at path, replacing any previous one.
	Initialize(path string) error
	// ReadAll yields every bar between start and end ordered by code, then date.
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Bar, error) bool)
	// ReadBars returns the bars matching query ordered by code, then date.
	ReadBars(query Query) ([]types.Bar, error)
	// Codes returns the distinct instrument codes in sorted order.
	Codes() ([]string, error)
	// Count returns the number of bars between start and end.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases the underlying resources.
	Close() error
}

// DetectFormat infers the format of a bar file from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedDataFormat, "unsupported bar file %q, expected .csv or .parquet", path)
	}
}
