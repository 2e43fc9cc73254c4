package dto

import (
	"lavka/internal/domain/profile"
)

// --- Request DTOs ---

type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Delivery bool               `json:"delivery"`
}

type OrderItemRequest struct {
	Product  string  `json:"product" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// --- Response DTOs ---

type OrderResponse struct {
	Number       int64               `json:"number"`
	Date         string              `json:"date"`
	Items        []OrderItemResponse `json:"items"`
	Subtotal     float64             `json:"subtotal"`
	DeliveryCost float64             `json:"delivery_cost"`
	Total        float64             `json:"total"`
	TotalWeight  float64             `json:"total_weight"`
}

type OrderItemResponse struct {
	Product       string  `json:"product"`
	Quantity      float64 `json:"quantity"`
	UnitCostPrice float64 `json:"unit_cost_price"`
	LineTotal     float64 `json:"line_total"`
}

func FromOrder(o profile.Order) OrderResponse {
	subtotal, _ := o.Subtotal.Float64()
	delivery, _ := o.DeliveryCost.Float64()
	total, _ := o.Total.Float64()
	weight, _ := o.TotalWeight().Float64()

	resp := OrderResponse{
		Number:       o.Number,
		Date:         o.Date,
		Items:        make([]OrderItemResponse, 0, len(o.Items)),
		Subtotal:     subtotal,
		DeliveryCost: delivery,
		Total:        total,
		TotalWeight:  weight,
	}
	for _, item := range o.Items {
		quantity, _ := item.Quantity.Float64()
		price, _ := item.UnitCostPrice.Float64()
		lineTotal, _ := item.LineTotal.Float64()
		resp.Items = append(resp.Items, OrderItemResponse{
			Product:       item.ProductName,
			Quantity:      quantity,
			UnitCostPrice: price,
			LineTotal:     lineTotal,
		})
	}
	return resp
}

func FromOrders(orders []profile.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
