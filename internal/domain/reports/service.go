// Package reports provides read-only aggregations over a profile: sales
// analysis for a date range, order history, daily statistics and stock
// history. Nothing here mutates state.
package reports

import (
	"context"
	"sort"
	"time"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
	"lavka/internal/domain/profile"
)

// SalesRow is one per-day per-product aggregation line. Revenue and
// Expenses are the profit and expense shares of the amount, taken from the
// product's current percentages.
type SalesRow struct {
	Date     string         `json:"date"`
	Product  string         `json:"product"`
	Quantity types.Quantity `json:"quantity"`
	Amount   types.Money    `json:"amount"`
	Revenue  types.Money    `json:"revenue"`
	Expenses types.Money    `json:"expenses"`
}

// SalesReport is the range analysis with a grand-total row.
type SalesReport struct {
	Rows          []SalesRow     `json:"rows"`
	TotalQuantity types.Quantity `json:"total_quantity"`
	TotalAmount   types.Money    `json:"total_amount"`
	TotalRevenue  types.Money    `json:"total_revenue"`
	TotalExpenses types.Money    `json:"total_expenses"`
}

// DailyStatsRow pairs a date with its rollup for sorted listing.
type DailyStatsRow struct {
	Date  string             `json:"date"`
	Stats profile.DailyStats `json:"stats"`
}

// Service answers report queries against profile snapshots.
type Service struct {
	profiles *profile.Service
}

// NewService creates a report service.
func NewService(profiles *profile.Service) *Service {
	return &Service{profiles: profiles}
}

// SalesAnalysis aggregates order lines per day and product over [from, to],
// optionally filtered to one product. Rows are sorted by date, then product.
func (s *Service) SalesAnalysis(ctx context.Context, profileName string, from, to time.Time, productFilter string) (SalesReport, error) {
	if to.Before(from) {
		return SalesReport{}, apperror.NewValidation("date range start cannot be after its end").
			WithDetail("from", types.FormatDate(from)).
			WithDetail("to", types.FormatDate(to))
	}

	p, err := s.profiles.Get(ctx, profileName)
	if err != nil {
		return SalesReport{}, err
	}

	type bucket struct {
		qty types.Quantity
		sum types.Money
	}
	buckets := map[string]map[string]*bucket{}

	for _, order := range p.Orders {
		orderDate, err := types.ParseDate(order.Date)
		if err != nil {
			continue
		}
		if orderDate.Before(from) || orderDate.After(to) {
			continue
		}
		for _, item := range order.Items {
			if productFilter != "" && item.ProductName != productFilter {
				continue
			}
			day, ok := buckets[order.Date]
			if !ok {
				day = map[string]*bucket{}
				buckets[order.Date] = day
			}
			b, ok := day[item.ProductName]
			if !ok {
				b = &bucket{qty: types.Zero(), sum: types.Zero()}
				day[item.ProductName] = b
			}
			b.qty = b.qty.Add(item.Quantity)
			b.sum = b.sum.Add(item.LineTotal)
		}
	}

	report := SalesReport{
		Rows:          []SalesRow{},
		TotalQuantity: types.Zero(),
		TotalAmount:   types.Zero(),
		TotalRevenue:  types.Zero(),
		TotalExpenses: types.Zero(),
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		names := make([]string, 0, len(buckets[date]))
		for name := range buckets[date] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			b := buckets[date][name]

			var profitPct, expensePct float64
			if product, ok := p.FindProduct(name); ok {
				profitPct = product.PercentProfit
				expensePct = product.PercentExpenses
			}

			revenue := b.sum.Mul(types.NewMoney(profitPct)).Div(types.NewMoneyFromInt(100))
			expenses := b.sum.Mul(types.NewMoney(expensePct)).Div(types.NewMoneyFromInt(100))

			report.Rows = append(report.Rows, SalesRow{
				Date:     date,
				Product:  name,
				Quantity: b.qty,
				Amount:   b.sum,
				Revenue:  revenue,
				Expenses: expenses,
			})
			report.TotalQuantity = report.TotalQuantity.Add(b.qty)
			report.TotalAmount = report.TotalAmount.Add(b.sum)
			report.TotalRevenue = report.TotalRevenue.Add(revenue)
			report.TotalExpenses = report.TotalExpenses.Add(expenses)
		}
	}

	return report, nil
}

// OrdersInRange returns orders dated within [from, to], optionally only
// those containing the given product.
func (s *Service) OrdersInRange(ctx context.Context, profileName string, from, to time.Time, productFilter string) ([]profile.Order, error) {
	if to.Before(from) {
		return nil, apperror.NewValidation("date range start cannot be after its end")
	}

	p, err := s.profiles.Get(ctx, profileName)
	if err != nil {
		return nil, err
	}

	out := []profile.Order{}
	for _, order := range p.Orders {
		orderDate, err := types.ParseDate(order.Date)
		if err != nil {
			continue
		}
		if orderDate.Before(from) || orderDate.After(to) {
			continue
		}
		if productFilter != "" && !orderContains(order, productFilter) {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

// RecentOrders returns orders sorted by number descending, at most limit.
func (s *Service) RecentOrders(ctx context.Context, profileName string, limit int) ([]profile.Order, error) {
	p, err := s.profiles.Get(ctx, profileName)
	if err != nil {
		return nil, err
	}

	out := make([]profile.Order, len(p.Orders))
	copy(out, p.Orders)
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DailyStats returns the per-date rollups sorted by date ascending.
func (s *Service) DailyStats(ctx context.Context, profileName string) ([]DailyStatsRow, error) {
	p, err := s.profiles.Get(ctx, profileName)
	if err != nil {
		return nil, err
	}

	out := make([]DailyStatsRow, 0, len(p.DailyStats))
	for date, stats := range p.DailyStats {
		out = append(out, DailyStatsRow{Date: date, Stats: *stats})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// StockHistory returns a product's ledger events in chronological order.
func (s *Service) StockHistory(ctx context.Context, profileName, product string) ([]profile.StockEvent, error) {
	p, err := s.profiles.Get(ctx, profileName)
	if err != nil {
		return nil, err
	}

	entry, ok := p.Stock[product]
	if !ok {
		return nil, apperror.NewNotFound("stock entry", product)
	}
	return entry.History, nil
}

func orderContains(order profile.Order, product string) bool {
	for _, item := range order.Items {
		if item.ProductName == product {
			return true
		}
	}
	return false
}
