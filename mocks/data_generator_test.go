package mocks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarGenerator_Generate(t *testing.T) {
	config := DefaultConfig()
	config.Count = 100

	bars := NewBarGenerator(42).Generate(config)
	require.Len(t, bars, 100)

	for i, bar := range bars {
		assert.Equal(t, config.Code, bar.Code)
		assert.Greater(t, bar.Close, 0.0, "close at %d", i)
		assert.GreaterOrEqual(t, bar.High, bar.Low, "high below low at %d", i)

		if i > 0 {
			assert.Equal(t, config.Interval, bar.Date.Sub(bars[i-1].Date))
		}
	}
}

func TestBarGenerator_Reproducible(t *testing.T) {
	config := DefaultConfig()
	config.Count = 20

	first := NewBarGenerator(7).Generate(config)
	second := NewBarGenerator(7).Generate(config)
	other := NewBarGenerator(8).Generate(config)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestBarGenerator_GenerateCodes(t *testing.T) {
	config := DefaultConfig()
	config.Count = 30

	bars := NewBarGenerator(1).GenerateCodes([]string{"AAPL", "MSFT"}, config)
	require.Len(t, bars, 60)

	counts := map[string]int{}
	for _, bar := range bars {
		counts[bar.Code]++
	}

	assert.Equal(t, map[string]int{"AAPL": 30, "MSFT": 30}, counts)
}

func TestGenerateBars(t *testing.T) {
	bars := GenerateBars("SPY", 10)

	require.Len(t, bars, 10)
	assert.Equal(t, "SPY", bars[0].Code)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Date)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")

	require.NoError(t, WriteCSV(path, GenerateBars("SPY", 3)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,code,exchange,open,high,low,close,volume", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-01 00:00:00,SPY,SSE,"))
}
