package commission_fee

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommissionFeeTestSuite struct {
	suite.Suite
}

func TestCommissionFeeSuite(t *testing.T) {
	suite.Run(t, new(CommissionFeeTestSuite))
}

func (suite *CommissionFeeTestSuite) TestZeroCommissionFee() {
	fee := NewZeroCommissionFee()
	suite.NotNil(fee)

	tests := []struct {
		name     string
		quantity float64
		price    float64
		expected float64
	}{
		{"zero quantity", 0, 100, 0},
		{"small quantity", 10, 100, 0},
		{"large quantity", 10000, 50, 0},
		{"negative quantity", -100, 10, 0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, fee.Calculate(tc.quantity, tc.price))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestInteractiveBrokerCommissionFee() {
	fee := NewInteractiveBrokerCommissionFee()
	suite.NotNil(fee)

	tests := []struct {
		name     string
		quantity float64
		expected float64
	}{
		{"zero quantity", 0, 1.0},             // minimum fee is 1.0
		{"small quantity - min fee", 10, 1.0}, // 0.005 * 10 = 0.05 < 1.0
		{"quantity at threshold", 200, 1.0},   // 0.005 * 200 = 1.0
		{"large quantity", 1000, 5.0},         // 0.005 * 1000 = 5.0
		{"very large quantity", 10000, 50.0},  // 0.005 * 10000 = 50.0
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, fee.Calculate(tc.quantity, 123.45))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestFlatPercentCommissionFee() {
	tests := []struct {
		name     string
		flat     float64
		percent  float64
		quantity float64
		price    float64
		expected float64
	}{
		{"flat only", 2, 0, 100, 50, 2},
		{"percent only", 0, 0.1, 100, 50, 5},
		{"flat and percent", 1, 0.5, 10, 200, 11},
		{"short side uses absolute notional", 0, 1, -10, 100, 10},
		{"nothing", 0, 0, 500, 100, 0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			fee := NewFlatPercentCommissionFee(tc.flat, tc.percent)
			suite.InDelta(tc.expected, fee.Calculate(tc.quantity, tc.price), 1e-12)
		})
	}
}

func (suite *CommissionFeeTestSuite) TestGetCommissionFeeHandler() {
	tests := []struct {
		name           string
		broker         Broker
		quantity       float64
		price          float64
		expectedResult float64
	}{
		{"flat percent", BrokerFlatPercent, 100, 10, 1 + 0.2*10},
		{"interactive broker", BrokerInteractiveBroker, 1000, 10, 5.0},
		{"zero commission", BrokerZero, 1000, 10, 0.0},
		{"unknown broker defaults to zero", Broker("unknown"), 1000, 10, 0.0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			handler := GetCommissionFeeHandler(tc.broker, 1, 0.2)
			suite.NotNil(handler)
			suite.InDelta(tc.expectedResult, handler.Calculate(tc.quantity, tc.price), 1e-12)
		})
	}
}

func (suite *CommissionFeeTestSuite) TestAllBrokers() {
	suite.Len(AllBrokers, 3)
	suite.Contains(AllBrokers, BrokerFlatPercent)
	suite.Contains(AllBrokers, BrokerInteractiveBroker)
	suite.Contains(AllBrokers, BrokerZero)
}

func (suite *CommissionFeeTestSuite) TestBrokerConstants() {
	suite.Equal(Broker("flat_percent"), BrokerFlatPercent)
	suite.Equal(Broker("interactive_broker"), BrokerInteractiveBroker)
	suite.Equal(Broker("zero_commission"), BrokerZero)
}
