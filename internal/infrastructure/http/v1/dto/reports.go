package dto

import (
	"lavka/internal/domain/profile"
	"lavka/internal/domain/reports"
)

// --- Response DTOs ---

type SalesRowResponse struct {
	Date     string  `json:"date"`
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type SalesReportResponse struct {
	Rows          []SalesRowResponse `json:"rows"`
	TotalQuantity float64            `json:"total_quantity"`
	TotalAmount   float64            `json:"total_amount"`
	TotalRevenue  float64            `json:"total_revenue"`
	TotalExpenses float64            `json:"total_expenses"`
}

func FromSalesReport(r reports.SalesReport) SalesReportResponse {
	totalQuantity, _ := r.TotalQuantity.Float64()
	totalAmount, _ := r.TotalAmount.Float64()
	totalRevenue, _ := r.TotalRevenue.Float64()
	totalExpenses, _ := r.TotalExpenses.Float64()

	resp := SalesReportResponse{
		Rows:          make([]SalesRowResponse, 0, len(r.Rows)),
		TotalQuantity: totalQuantity,
		TotalAmount:   totalAmount,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
	}
	for _, row := range r.Rows {
		quantity, _ := row.Quantity.Float64()
		amount, _ := row.Amount.Float64()
		revenue, _ := row.Revenue.Float64()
		expenses, _ := row.Expenses.Float64()
		resp.Rows = append(resp.Rows, SalesRowResponse{
			Date:     row.Date,
			Product:  row.Product,
			Quantity: quantity,
			Amount:   amount,
			Revenue:  revenue,
			Expenses: expenses,
		})
	}
	return resp
}

type DailyStatsResponse struct {
	OrdersCount   int64   `json:"orders_count"`
	DeliveryCount int64   `json:"delivery_count"`
	DeliverySum   float64 `json:"delivery_sum"`
	TotalRevenue  float64 `json:"total_revenue"`
}

func FromDailyStats(s *profile.DailyStats) DailyStatsResponse {
	deliverySum, _ := s.DeliverySum.Float64()
	revenue, _ := s.TotalRevenue.Float64()
	return DailyStatsResponse{
		OrdersCount:   s.OrdersCount,
		DeliveryCount: s.DeliveryCount,
		DeliverySum:   deliverySum,
		TotalRevenue:  revenue,
	}
}

type DailyStatsRowResponse struct {
	Date string `json:"date"`
	DailyStatsResponse
}

func FromDailyStatsRows(rows []reports.DailyStatsRow) []DailyStatsRowResponse {
	out := make([]DailyStatsRowResponse, 0, len(rows))
	for _, row := range rows {
		stats := row.Stats
		out = append(out, DailyStatsRowResponse{
			Date:               row.Date,
			DailyStatsResponse: FromDailyStats(&stats),
		})
	}
	return out
}
