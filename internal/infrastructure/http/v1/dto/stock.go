package dto

import (
	"lavka/internal/domain/profile"
)

// --- Request DTOs ---

type RestockRequest struct {
	Product   string  `json:"product" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type AdjustStockRequest struct {
	Product   string  `json:"product" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"gte=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

// --- Response DTOs ---

type StockEntryResponse struct {
	Product         string  `json:"product"`
	CurrentQuantity float64 `json:"current_quantity"`
	TotalValue      float64 `json:"total_value"`
	AveragePrice    float64 `json:"average_price"`
	Events          int     `json:"events"`
}

func FromStockEntry(product string, entry *profile.StockEntry) StockEntryResponse {
	quantity, _ := entry.CurrentQuantity.Float64()
	value, _ := entry.TotalValue.Float64()
	avg, _ := entry.AveragePrice().Float64()
	return StockEntryResponse{
		Product:         product,
		CurrentQuantity: quantity,
		TotalValue:      value,
		AveragePrice:    avg,
		Events:          len(entry.History),
	}
}

type StockEventResponse struct {
	Timestamp     string  `json:"timestamp"`
	QuantityDelta float64 `json:"quantity_delta"`
	UnitPrice     float64 `json:"unit_price"`
	Operation     string  `json:"operation"`
	Amount        float64 `json:"amount"`
	BalanceAfter  float64 `json:"balance_after"`
}

func FromStockEvent(e profile.StockEvent) StockEventResponse {
	delta, _ := e.QuantityDelta.Float64()
	price, _ := e.UnitPrice.Float64()
	amount, _ := e.Amount.Float64()
	balance, _ := e.BalanceAfter.Float64()
	return StockEventResponse{
		Timestamp:     e.Timestamp,
		QuantityDelta: delta,
		UnitPrice:     price,
		Operation:     string(e.Operation),
		Amount:        amount,
		BalanceAfter:  balance,
	}
}

func FromStockHistory(events []profile.StockEvent) []StockEventResponse {
	out := make([]StockEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FromStockEvent(e))
	}
	return out
}
