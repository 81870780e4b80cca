package utils

import (
	"math"

	"github.com/rxtech-lab/argo-kernel/internal/backtest/engine/engine_v1/commission_fee"
)

// CalculateMaxQuantity calculates the maximum quantity that can be bought at price
// with the given balance once the commission is paid.
func CalculateMaxQuantity(balance float64, price float64, commissionFee commission_fee.CommissionFee) float64 {
	// Handle edge cases
	if price <= 0 || balance <= 0 {
		return 0
	}

	// Initial rough estimate (ignoring fees)
	maxQty := balance / price

	// Iteratively refine by accounting for fees
	for i := 0; i < 10; i++ { // Usually converges quickly, limit iterations
		totalCost := maxQty*price + commissionFee.Calculate(maxQty, price)
		if totalCost <= balance {
			break
		}
		// Adjust quantity down proportionally
		adjustment := balance / totalCost
		maxQty *= adjustment
	}

	return maxQty
}

// RoundToDecimalPrecision rounds the quantity down to the specified decimal precision.
func RoundToDecimalPrecision(quantity float64, decimalPrecision int) float64 {
	multiplier := math.Pow10(decimalPrecision)

	return math.Floor(quantity*multiplier) / multiplier
}

// CalculatePositionQuantity sizes an entry in whole units: floor(balance*fraction/price),
// reduced until the cost plus commission fits in the balance. It returns 0 when
// not even one unit is affordable.
func CalculatePositionQuantity(balance float64, price float64, fraction float64, commissionFee commission_fee.CommissionFee) float64 {
	if price <= 0 || balance <= 0 || fraction <= 0 {
		return 0
	}

	quantity := math.Floor(balance * fraction / price)
	if quantity <= 0 {
		return 0
	}

	if quantity*price+commissionFee.Calculate(quantity, price) <= balance {
		return quantity
	}

	quantity = RoundToDecimalPrecision(CalculateMaxQuantity(balance, price, commissionFee), 0)
	for quantity > 0 && quantity*price+commissionFee.Calculate(quantity, price) > balance {
		quantity--
	}

	return math.Max(quantity, 0)
}
