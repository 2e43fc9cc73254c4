// Package profile provides the merchant profile aggregate: product catalog,
// stock ledger entries, orders and daily statistics, plus the repository
// that persists the profile collection as one JSON document.
package profile

import (
	"context"
	"strings"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
	"lavka/internal/domain/pricing"
)

// DeletedProductName is the sentinel written into order items when their
// product is removed from the catalog. Committed orders keep their captured
// prices, only the label changes.
const DeletedProductName = "deleted product"

// StockOperation identifies the kind of a ledger mutation.
type StockOperation string

const (
	OperationRestock     StockOperation = "restock"
	OperationAdjustment  StockOperation = "adjustment"
	OperationConsumption StockOperation = "consumption"
)

// Product is a catalog item. CostPrice is the sale price per kg; Profit is
// the margin baked into it. Derived fields are recomputed on every change,
// never edited directly.
type Product struct {
	Name            string      `json:"name"`
	CostPrice       types.Money `json:"cost_price"`
	Profit          types.Money `json:"profit"`
	Expenses        types.Money `json:"expenses"`
	PercentExpenses float64     `json:"percent_expenses"`
	PercentProfit   float64     `json:"percent_profit"`
}

// NewProduct creates a Product with derived fields computed.
func NewProduct(name string, costPrice, profit types.Money) Product {
	return Product{
		Name:            name,
		CostPrice:       costPrice,
		Profit:          profit,
		Expenses:        costPrice.Sub(profit),
		PercentExpenses: pricing.PercentExpenses(costPrice, profit),
		PercentProfit:   pricing.PercentProfit(costPrice, profit),
	}
}

// Validate implements constructor-time validation.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name cannot be empty").
			WithDetail("field", "name")
	}

	if !p.CostPrice.IsPositive() {
		return apperror.NewValidation("cost price must be positive").
			WithDetail("field", "cost_price")
	}

	if p.Profit.IsNegative() {
		return apperror.NewValidation("profit cannot be negative").
			WithDetail("field", "profit")
	}

	if p.Profit.GreaterThan(p.CostPrice) {
		return apperror.NewValidation("profit cannot exceed cost price").
			WithDetail("field", "profit")
	}

	return nil
}

// StockEvent is one append-only audit record of a ledger mutation.
// BalanceAfter always equals the entry quantity right after the mutation.
type StockEvent struct {
	Timestamp     string         `json:"timestamp"`
	QuantityDelta types.Quantity `json:"quantity_delta"`
	UnitPrice     types.Money    `json:"unit_price"`
	Operation     StockOperation `json:"operation"`
	Amount        types.Money    `json:"amount"`
	BalanceAfter  types.Quantity `json:"balance_after"`
}

// StockEntry is the per-product ledger state: current quantity, the cost
// basis of that quantity, and the chronological mutation history.
type StockEntry struct {
	CurrentQuantity types.Quantity `json:"current_quantity"`
	TotalValue      types.Money    `json:"total_value"`
	History         []StockEvent   `json:"history"`
}

// NewStockEntry returns an empty ledger entry.
func NewStockEntry() *StockEntry {
	return &StockEntry{
		CurrentQuantity: types.Zero(),
		TotalValue:      types.Zero(),
		History:         []StockEvent{},
	}
}

// AveragePrice returns the weighted average unit cost, zero when empty.
func (s *StockEntry) AveragePrice() types.Money {
	if !s.CurrentQuantity.IsPositive() {
		return types.Zero()
	}
	return s.TotalValue.Div(s.CurrentQuantity)
}

// Clone returns a deep copy of the entry.
func (s *StockEntry) Clone() *StockEntry {
	out := &StockEntry{
		CurrentQuantity: s.CurrentQuantity,
		TotalValue:      s.TotalValue,
		History:         make([]StockEvent, len(s.History)),
	}
	copy(out.History, s.History)
	return out
}

// OrderItem is one order line. UnitCostPrice is captured at order time and
// immutable thereafter; product price edits never rewrite history.
type OrderItem struct {
	ProductName   string         `json:"product_name"`
	Quantity      types.Quantity `json:"quantity"`
	UnitCostPrice types.Money    `json:"unit_cost_price"`
	LineTotal     types.Money    `json:"line_total"`
}

// Order is a committed sales order. Total is always recomputed from
// subtotal + delivery, never stored independently.
type Order struct {
	Number       int64       `json:"number"`
	Date         string      `json:"date"`
	Items        []OrderItem `json:"items"`
	Subtotal     types.Money `json:"subtotal"`
	DeliveryCost types.Money `json:"delivery_cost"`
	Total        types.Money `json:"total"`
}

// TotalWeight sums the item quantities.
func (o *Order) TotalWeight() types.Quantity {
	w := types.Zero()
	for _, item := range o.Items {
		w = w.Add(item.Quantity)
	}
	return w
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() Order {
	out := *o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}

// DailyStats is the per-date rollup of committed orders.
type DailyStats struct {
	OrdersCount   int64       `json:"orders_count"`
	DeliveryCount int64       `json:"delivery_count"`
	DeliverySum   types.Money `json:"delivery_sum"`
	TotalRevenue  types.Money `json:"total_revenue"`
}

// NewDailyStats returns a zeroed rollup.
func NewDailyStats() *DailyStats {
	return &DailyStats{
		DeliverySum:  types.Zero(),
		TotalRevenue: types.Zero(),
	}
}

// Profile is one merchant's isolated dataset. A profile exclusively owns
// its products, stock entries, orders and stats.
type Profile struct {
	Products        []Product              `json:"products"`
	Stock           map[string]*StockEntry `json:"stock"`
	Orders          []Order                `json:"orders"`
	DailyStats      map[string]*DailyStats `json:"daily_stats"`
	NextOrderNumber int64                  `json:"next_order_number"`
}

// NewProfile returns a default-initialized profile.
func NewProfile() *Profile {
	return &Profile{
		Products:        []Product{},
		Stock:           map[string]*StockEntry{},
		Orders:          []Order{},
		DailyStats:      map[string]*DailyStats{},
		NextOrderNumber: 1,
	}
}

// FindProduct returns the catalog product by exact name.
func (p *Profile) FindProduct(name string) (Product, bool) {
	for _, product := range p.Products {
		if product.Name == name {
			return product, true
		}
	}
	return Product{}, false
}

// HasProductNamed reports whether a product with the given name exists,
// case-insensitively. excludeName skips one exact name (for renames).
func (p *Profile) HasProductNamed(name, excludeName string) bool {
	lower := strings.ToLower(name)
	for _, product := range p.Products {
		if product.Name == excludeName {
			continue
		}
		if strings.ToLower(product.Name) == lower {
			return true
		}
	}
	return false
}

// StockOf returns the ledger entry for a product, materializing an empty
// one on first reference.
func (p *Profile) StockOf(name string) *StockEntry {
	if p.Stock == nil {
		p.Stock = map[string]*StockEntry{}
	}
	entry, ok := p.Stock[name]
	if !ok {
		entry = NewStockEntry()
		p.Stock[name] = entry
	}
	return entry
}

// StatsOf returns the daily rollup for a date, materializing a zeroed one
// on first reference.
func (p *Profile) StatsOf(date string) *DailyStats {
	if p.DailyStats == nil {
		p.DailyStats = map[string]*DailyStats{}
	}
	stats, ok := p.DailyStats[date]
	if !ok {
		stats = NewDailyStats()
		p.DailyStats[date] = stats
	}
	return stats
}

// Clone returns a deep copy of the profile. Mutating operations work on a
// clone and publish it only after every validation passes.
func (p *Profile) Clone() *Profile {
	out := &Profile{
		Products:        make([]Product, len(p.Products)),
		Stock:           make(map[string]*StockEntry, len(p.Stock)),
		Orders:          make([]Order, 0, len(p.Orders)),
		DailyStats:      make(map[string]*DailyStats, len(p.DailyStats)),
		NextOrderNumber: p.NextOrderNumber,
	}
	copy(out.Products, p.Products)
	for name, entry := range p.Stock {
		out.Stock[name] = entry.Clone()
	}
	for _, order := range p.Orders {
		out.Orders = append(out.Orders, order.Clone())
	}
	for date, stats := range p.DailyStats {
		s := *stats
		out.DailyStats[date] = &s
	}
	return out
}
