package datasource

import (
	"sort"

	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
)

// Series is the ascending bar series of one code.
type Series struct {
	Code string
	Bars []types.Bar
}

// GroupByCode splits bars into one series per code, sorted by code. The
// relative order of each code's bars is kept.
func GroupByCode(bars []types.Bar) []Series {
	index := make(map[string]int)

	var series []Series

	for _, bar := range bars {
		i, ok := index[bar.Code]
		if !ok {
			i = len(series)
			index[bar.Code] = i
			series = append(series, Series{Code: bar.Code})
		}

		series[i].Bars = append(series[i].Bars, bar)
	}

	sort.Slice(series, func(a, b int) bool {
		return series[a].Code < series[b].Code
	})

	return series
}

// Collect drains an iterator returned by DataSource.ReadAll.
func Collect(iter func(yield func(types.Bar, error) bool)) ([]types.Bar, error) {
	var (
		bars    []types.Bar
		iterErr error
	)

	iter(func(bar types.Bar, err error) bool {
		if err != nil {
			iterErr = err

			return false
		}

		bars = append(bars, bar)

		return true
	})

	return bars, iterErr
}

func getIntervalMinutes(interval Interval) (int, error) {
	switch interval {
	case Interval1m:
		return 1, nil
	case Interval5m:
		return 5, nil
	case Interval15m:
		return 15, nil
	case Interval30m:
		return 30, nil
	case Interval1h:
		return 60, nil
	case Interval4h:
		return 240, nil
	case Interval1d:
		return 1440, nil
	case Interval1w:
		return 10080, nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported interval: %s", interval)
	}
}
