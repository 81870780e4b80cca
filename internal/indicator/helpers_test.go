package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-kernel/internal/types"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds bars whose high and low sit one unit around the close.
func barsFromCloses(closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Code:  "TEST",
			Date:  testStart.AddDate(0, 0, i),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}

	return bars
}

func constantCloses(value float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = value
	}

	return closes
}

func rampCloses(start, step float64, n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}

	return closes
}
