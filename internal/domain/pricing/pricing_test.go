package pricing

import (
	"testing"

	"lavka/internal/core/types"
)

func TestPercentExpenses(t *testing.T) {
	tests := []struct {
		name      string
		costPrice string
		profit    string
		want      float64
	}{
		{"typical margin", "100", "30", 70},
		{"no profit", "100", "0", 100},
		{"all profit", "100", "100", 0},
		{"zero cost price", "0", "0", 0},
		{"fractional", "250", "50", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentExpenses(types.MustMoney(tt.costPrice), types.MustMoney(tt.profit))
			if got != tt.want {
				t.Errorf("PercentExpenses(%s, %s) = %v, want %v", tt.costPrice, tt.profit, got, tt.want)
			}
		})
	}
}

func TestPercentProfit(t *testing.T) {
	tests := []struct {
		name      string
		costPrice string
		profit    string
		want      float64
	}{
		{"typical margin", "100", "30", 30},
		{"no profit", "100", "0", 0},
		{"all profit", "100", "100", 100},
		{"zero cost price", "0", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentProfit(types.MustMoney(tt.costPrice), types.MustMoney(tt.profit))
			if got != tt.want {
				t.Errorf("PercentProfit(%s, %s) = %v, want %v", tt.costPrice, tt.profit, got, tt.want)
			}
		})
	}
}

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		weight string
		want   int64
	}{
		{"10", FeeHeavy},
		{"5", FeeHeavy},
		{"4.99", FeeMedium},
		{"3", FeeMedium},
		{"2.99", FeeLight},
		{"0.5", FeeLight},
		{"0", FeeLight},
	}

	for _, tt := range tests {
		t.Run(tt.weight+"kg", func(t *testing.T) {
			got := DeliveryFee(types.MustQuantity(tt.weight))
			if got != tt.want {
				t.Errorf("DeliveryFee(%s) = %d, want %d", tt.weight, got, tt.want)
			}
		})
	}
}
