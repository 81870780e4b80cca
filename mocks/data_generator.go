package mocks

import (
	"encoding/csv"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-kernel/internal/types"
)

// BarGenerator produces reproducible synthetic OHLCV bars for tests and
// benchmarks. Closes follow a geometric random walk.
type BarGenerator struct {
	rng *rand.Rand
}

// NewBarGenerator creates a generator seeded with seed.
func NewBarGenerator(seed int64) *BarGenerator {
	return &BarGenerator{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // test data only
	}
}

// GeneratorConfig configures one generated series.
type GeneratorConfig struct {
	Code         string
	Exchange     string
	Start        time.Time
	Interval     time.Duration
	Count        int
	InitialPrice float64
	// Volatility is the standard deviation of the per-bar return (0.01 = 1%).
	Volatility float64
	// Drift is the total return the walk is pulled toward over Count bars.
	Drift      float64
	VolumeBase float64
}

// DefaultConfig returns a daily series of 500 bars starting at 100.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Code:         "TEST",
		Exchange:     "SSE",
		Start:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:     24 * time.Hour,
		Count:        500,
		InitialPrice: 100,
		Volatility:   0.015,
		Drift:        0,
		VolumeBase:   100000,
	}
}

// Generate returns config.Count bars ascending by date.
func (g *BarGenerator) Generate(config GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, config.Count)
	price := config.InitialPrice
	date := config.Start

	step := 0.0
	if config.Count > 0 {
		step = config.Drift / float64(config.Count)
	}

	for i := range bars {
		open := price

		closePrice := open * (1 + config.Volatility*g.normal() + step)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) * (1 + math.Abs(g.normal())*config.Volatility*0.5)
		low := math.Min(open, closePrice) * (1 - math.Abs(g.normal())*config.Volatility*0.5)

		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volume := config.VolumeBase * (0.7 + 0.6*g.rng.Float64())

		bars[i] = types.Bar{
			Code:     config.Code,
			Exchange: config.Exchange,
			Date:     date,
			Open:     round(open, 4),
			High:     round(high, 4),
			Low:      round(low, 4),
			Close:    round(closePrice, 4),
			Volume:   math.Round(volume),
		}

		price = closePrice
		date = date.Add(config.Interval)
	}

	return bars
}

// GenerateCodes returns one series per code, concatenated code by code.
// Initial prices vary per code.
func (g *BarGenerator) GenerateCodes(codes []string, base GeneratorConfig) []types.Bar {
	var bars []types.Bar

	for _, code := range codes {
		config := base
		config.Code = code
		config.InitialPrice = base.InitialPrice * (0.8 + 0.4*g.rng.Float64())

		bars = append(bars, g.Generate(config)...)
	}

	return bars
}

// GenerateBars is a shortcut for a fixed-seed default series of count bars.
func GenerateBars(code string, count int) []types.Bar {
	config := DefaultConfig()
	config.Code = code
	config.Count = count

	return NewBarGenerator(42).Generate(config)
}

// WriteCSV writes bars to path with the header the bar loaders expect.
func WriteCSV(path string, bars []types.Bar) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"date", "code", "exchange", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}

	for _, bar := range bars {
		record := []string{
			bar.Date.Format(time.DateTime),
			bar.Code,
			bar.Exchange,
			formatFloat(bar.Open),
			formatFloat(bar.High),
			formatFloat(bar.Low),
			formatFloat(bar.Close),
			formatFloat(bar.Volume),
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

// normal draws a standard normal sample with the Box-Muller transform.
func (g *BarGenerator) normal() float64 {
	u1 := g.rng.Float64()
	for u1 == 0 {
		u1 = g.rng.Float64()
	}

	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func round(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(value*pow) / pow
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
