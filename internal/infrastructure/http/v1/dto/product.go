package dto

import (
	"lavka/internal/domain/profile"
)

// --- Request DTOs ---

type CreateProductRequest struct {
	Name      string  `json:"name" binding:"required"`
	CostPrice float64 `json:"cost_price" binding:"required,gt=0"`
	Profit    float64 `json:"profit" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name      string  `json:"name" binding:"required"`
	CostPrice float64 `json:"cost_price" binding:"required,gt=0"`
	Profit    float64 `json:"profit" binding:"gte=0"`
}

// --- Response DTOs ---

type ProductResponse struct {
	Name            string  `json:"name"`
	CostPrice       float64 `json:"cost_price"`
	Profit          float64 `json:"profit"`
	Expenses        float64 `json:"expenses"`
	PercentExpenses float64 `json:"percent_expenses"`
	PercentProfit   float64 `json:"percent_profit"`
}

func FromProduct(p profile.Product) ProductResponse {
	costPrice, _ := p.CostPrice.Float64()
	profit, _ := p.Profit.Float64()
	expenses, _ := p.Expenses.Float64()
	return ProductResponse{
		Name:            p.Name,
		CostPrice:       costPrice,
		Profit:          profit,
		Expenses:        expenses,
		PercentExpenses: p.PercentExpenses,
		PercentProfit:   p.PercentProfit,
	}
}
