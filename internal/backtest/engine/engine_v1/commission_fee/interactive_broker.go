package commission_fee

// InteractiveBrokerCommissionFee charges per share with a minimum per order.
type InteractiveBrokerCommissionFee struct {
	PerShare float64
	Minimum  float64
}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{PerShare: 0.005, Minimum: 1.0}
}

func (c *InteractiveBrokerCommissionFee) Calculate(quantity float64, _ float64) float64 {
	fee := c.PerShare * quantity
	if fee < c.Minimum {
		return c.Minimum
	}

	return fee
}
