package datasource

import (
	stderrors "errors"
	"testing"

	"github.com/rxtech-lab/argo-kernel/internal/types"
	"github.com/rxtech-lab/argo-kernel/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{path: "data/AAPL.csv", expected: FormatCSV},
		{path: "data/AAPL.CSV", expected: FormatCSV},
		{path: "data/AAPL.parquet", expected: FormatParquet},
		{path: "data/AAPL.json", wantErr: true},
		{path: "data/AAPL", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			format, err := DetectFormat(tc.path)
			if tc.wantErr {
				assert.True(t, errors.HasCode(err, errors.ErrCodeUnsupportedDataFormat))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, format)
		})
	}
}

func TestGroupByCode(t *testing.T) {
	bars := []types.Bar{
		{Code: "MSFT", Close: 1},
		{Code: "AAPL", Close: 2},
		{Code: "MSFT", Close: 3},
		{Code: "AAPL", Close: 4},
	}

	series := GroupByCode(bars)
	require.Len(t, series, 2)

	assert.Equal(t, "AAPL", series[0].Code)
	assert.Equal(t, []float64{2, 4}, []float64{series[0].Bars[0].Close, series[0].Bars[1].Close})
	assert.Equal(t, "MSFT", series[1].Code)
	assert.Equal(t, []float64{1, 3}, []float64{series[1].Bars[0].Close, series[1].Bars[1].Close})

	assert.Empty(t, GroupByCode(nil))
}

func TestCollect(t *testing.T) {
	iter := func(yield func(types.Bar, error) bool) {
		for i := 0; i < 3; i++ {
			if !yield(types.Bar{Close: float64(i)}, nil) {
				return
			}
		}
	}

	bars, err := Collect(iter)
	require.NoError(t, err)
	assert.Len(t, bars, 3)

	failure := stderrors.New("broken")
	failing := func(yield func(types.Bar, error) bool) {
		if !yield(types.Bar{}, nil) {
			return
		}

		yield(types.Bar{}, failure)
	}

	bars, err = Collect(failing)
	assert.ErrorIs(t, err, failure)
	assert.Len(t, bars, 1)
}

func TestGetIntervalMinutes(t *testing.T) {
	minutes, err := getIntervalMinutes(Interval1d)
	require.NoError(t, err)
	assert.Equal(t, 1440, minutes)

	minutes, err = getIntervalMinutes(Interval15m)
	require.NoError(t, err)
	assert.Equal(t, 15, minutes)

	_, err = getIntervalMinutes("2y")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidParameter))
}
