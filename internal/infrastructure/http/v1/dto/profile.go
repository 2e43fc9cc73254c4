// Package dto defines API request and response shapes and their mapping
// to domain entities. The API surface speaks plain floats; conversion to
// decimals happens here, at the boundary.
package dto

import (
	"lavka/internal/domain/profile"
)

// --- Request DTOs ---

type CreateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- Response DTOs ---

type ProfileResponse struct {
	Name            string                        `json:"name"`
	Products        []ProductResponse             `json:"products"`
	Stock           map[string]StockEntryResponse `json:"stock"`
	Orders          []OrderResponse               `json:"orders"`
	DailyStats      map[string]DailyStatsResponse `json:"daily_stats"`
	NextOrderNumber int64                         `json:"next_order_number"`
}

func FromProfile(name string, p *profile.Profile) ProfileResponse {
	resp := ProfileResponse{
		Name:            name,
		Products:        make([]ProductResponse, 0, len(p.Products)),
		Stock:           make(map[string]StockEntryResponse, len(p.Stock)),
		Orders:          make([]OrderResponse, 0, len(p.Orders)),
		DailyStats:      make(map[string]DailyStatsResponse, len(p.DailyStats)),
		NextOrderNumber: p.NextOrderNumber,
	}
	for _, product := range p.Products {
		resp.Products = append(resp.Products, FromProduct(product))
	}
	for name, entry := range p.Stock {
		resp.Stock[name] = FromStockEntry(name, entry)
	}
	for _, order := range p.Orders {
		resp.Orders = append(resp.Orders, FromOrder(order))
	}
	for date, stats := range p.DailyStats {
		resp.DailyStats[date] = FromDailyStats(stats)
	}
	return resp
}

type ProfileListResponse struct {
	Profiles []string `json:"profiles"`
}
