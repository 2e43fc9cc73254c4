// Package pricing provides the pure numeric formulas of the shop:
// expense and profit percentages and the weight-tiered delivery fee.
// All functions are deterministic and side-effect free; rejecting
// negative inputs is the caller's responsibility.
package pricing

import (
	"lavka/internal/core/types"
)

// Delivery fee tiers in whole currency units, inclusive lower bounds by
// total order weight in kg.
const (
	FeeHeavy  int64 = 100 // >= 5 kg
	FeeMedium int64 = 150 // >= 3 kg and < 5 kg
	FeeLight  int64 = 200 // < 3 kg
)

var (
	tierHeavy  = types.NewMoneyFromInt(5)
	tierMedium = types.NewMoneyFromInt(3)
)

// PercentExpenses returns the expense share of the sale price in percent:
// 100 × expenses / (expenses + profit), where expenses = costPrice − profit.
// Algebraically (expenses + profit) == costPrice, so the guard only matters
// for a zero cost price.
func PercentExpenses(costPrice, profit types.Money) float64 {
	if !costPrice.IsPositive() {
		return 0
	}
	expenses := costPrice.Sub(profit)
	ratio, _ := expenses.Div(costPrice).Float64()
	return ratio * 100
}

// PercentProfit returns the profit share of the sale price in percent:
// 100 × profit / costPrice.
func PercentProfit(costPrice, profit types.Money) float64 {
	if !costPrice.IsPositive() {
		return 0
	}
	ratio, _ := profit.Div(costPrice).Float64()
	return ratio * 100
}

// DeliveryFee returns the flat delivery fee for the given total order
// weight. Heavier orders are cheaper to deliver per the original tariff.
// Orders that opt out of delivery pay no fee; that decision is made by
// the caller, not here.
func DeliveryFee(totalWeight types.Quantity) int64 {
	switch {
	case totalWeight.GreaterThanOrEqual(tierHeavy):
		return FeeHeavy
	case totalWeight.GreaterThanOrEqual(tierMedium):
		return FeeMedium
	default:
		return FeeLight
	}
}
