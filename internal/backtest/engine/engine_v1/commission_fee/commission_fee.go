package commission_fee

// CommissionFee computes the commission charged on one fill.
type CommissionFee interface {
	// Calculate returns the commission in account currency for a fill of
	// quantity units at price.
	Calculate(quantity float64, price float64) float64
}

type Broker string

const (
	BrokerFlatPercent       Broker = "flat_percent"
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerZero              Broker = "zero_commission"
)

var AllBrokers = []any{
	BrokerFlatPercent,
	BrokerInteractiveBroker,
	BrokerZero,
}

// GetCommissionFeeHandler returns the fee model of a broker. flat and percent
// only apply to BrokerFlatPercent. Unknown brokers charge nothing.
func GetCommissionFeeHandler(broker Broker, flat float64, percent float64) CommissionFee {
	switch broker {
	case BrokerFlatPercent:
		return NewFlatPercentCommissionFee(flat, percent)
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}
