package commission_fee

import "math"

// FlatPercentCommissionFee charges a fixed amount plus a percentage of the
// fill notional.
type FlatPercentCommissionFee struct {
	Flat    float64
	Percent float64
}

func NewFlatPercentCommissionFee(flat float64, percent float64) CommissionFee {
	return &FlatPercentCommissionFee{Flat: flat, Percent: percent}
}

// Calculate returns flat + percent/100 * |quantity * price|.
func (c *FlatPercentCommissionFee) Calculate(quantity float64, price float64) float64 {
	return c.Flat + c.Percent/100*math.Abs(quantity*price)
}
