package types

import "time"

// PriceField names one OHLCV column of a bar.
type PriceField string

const (
	PriceFieldOpen   PriceField = "open"
	PriceFieldHigh   PriceField = "high"
	PriceFieldLow    PriceField = "low"
	PriceFieldClose  PriceField = "close"
	PriceFieldVolume PriceField = "volume"
)

// Bar is one time-indexed OHLCV observation of an instrument.
// A bar series is ordered ascending by Date and is never mutated once loaded.
type Bar struct {
	Code     string    `yaml:"code" json:"code" csv:"code"`
	Exchange string    `yaml:"exchange" json:"exchange" csv:"exchange"`
	Date     time.Time `yaml:"date" json:"date" csv:"date"`
	Open     float64   `yaml:"open" json:"open" csv:"open"`
	High     float64   `yaml:"high" json:"high" csv:"high"`
	Low      float64   `yaml:"low" json:"low" csv:"low"`
	Close    float64   `yaml:"close" json:"close" csv:"close"`
	Volume   float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// Field returns the value of the named column. The second result is false for
// an unknown field name.
func (b Bar) Field(field PriceField) (float64, bool) {
	switch field {
	case PriceFieldOpen:
		return b.Open, true
	case PriceFieldHigh:
		return b.High, true
	case PriceFieldLow:
		return b.Low, true
	case PriceFieldClose:
		return b.Close, true
	case PriceFieldVolume:
		return b.Volume, true
	default:
		return 0, false
	}
}
