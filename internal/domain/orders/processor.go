// Package orders provides the order-processing pipeline: a draft state
// machine over the order under construction and the atomic commit that
// validates stock, deducts inventory, computes the delivery fee and rolls
// up daily statistics.
package orders

import (
	"context"
	"fmt"
	"time"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/pricing"
	"lavka/internal/domain/profile"
	"lavka/pkg/logger"
)

// State is the draft lifecycle state.
type State int

const (
	StateEmpty State = iota
	StateAccumulating
	StateValidated
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateValidated:
		return "validated"
	case StateCommitted:
		return "committed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Draft accumulates order items before commit. It holds no ledger state;
// stock is only deducted at commit time. A draft that fails validation is
// discarded, the caller restarts from empty.
type Draft struct {
	state State
	items []profile.OrderItem
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{state: StateEmpty}
}

// State returns the current lifecycle state.
func (d *Draft) State() State { return d.state }

// Items returns the accumulated lines in insertion order.
func (d *Draft) Items() []profile.OrderItem {
	out := make([]profile.OrderItem, len(d.items))
	copy(out, d.items)
	return out
}

// AddItem appends a line. The quantity is checked against current
// availability per line; the line total is captured at the product's
// current cost price, not the ledger average.
func (d *Draft) AddItem(p *profile.Profile, productName string, quantity types.Quantity) error {
	if d.state == StateCommitted {
		return apperror.NewValidation("order is already committed")
	}
	if !quantity.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	product, ok := p.FindProduct(productName)
	if !ok {
		return apperror.NewNotFound("product", productName)
	}

	available := p.StockOf(productName).CurrentQuantity
	if quantity.GreaterThan(available) {
		return apperror.NewInsufficientStock(productName,
			quantity.String(), available.String())
	}

	d.items = append(d.items, profile.OrderItem{
		ProductName:   productName,
		Quantity:      quantity,
		UnitCostPrice: product.CostPrice,
		LineTotal:     quantity.Mul(product.CostPrice),
	})
	d.state = StateAccumulating
	return nil
}

// Processor commits drafts against named profiles. The whole commit
// (deduction, order record, stats, counter) is one persisted unit.
type Processor struct {
	profiles *profile.Service
	now      func() time.Time
}

// NewProcessor creates an order processor. now may be nil for the wall clock.
func NewProcessor(profiles *profile.Service, now func() time.Time) *Processor {
	if now == nil {
		now = time.Now
	}
	return &Processor{profiles: profiles, now: now}
}

// Commit validates the aggregate demand of the draft, deducts stock in item
// order, appends the finalized order and updates daily stats. All of it
// happens on a private profile copy published only if every step succeeds:
// a failure leaves ledger, orders and stats exactly as they were.
func (p *Processor) Commit(ctx context.Context, profileName string, d *Draft, deliveryEnabled bool) (profile.Order, error) {
	if d.state == StateCommitted {
		return profile.Order{}, apperror.NewValidation("order is already committed")
	}
	if len(d.items) == 0 {
		return profile.Order{}, apperror.NewValidation("order has no items")
	}

	now := p.now()
	var committed profile.Order

	err := p.profiles.Mutate(ctx, profileName, func(prof *profile.Profile) error {
		// Re-validate aggregate demand per product: the same product may
		// appear on several lines, and each AddItem only checked its own
		// line against a stock figure not yet decremented.
		demand := map[string]types.Quantity{}
		order := []string{}
		for _, item := range d.items {
			if _, seen := demand[item.ProductName]; !seen {
				order = append(order, item.ProductName)
			}
			demand[item.ProductName] = demand[item.ProductName].Add(item.Quantity)
		}
		for _, name := range order {
			available := prof.StockOf(name).CurrentQuantity
			if demand[name].GreaterThan(available) {
				return apperror.NewInsufficientStock(name,
					demand[name].String(), available.String())
			}
		}
		d.state = StateValidated

		subtotal := types.Zero()
		totalWeight := types.Zero()
		for _, item := range d.items {
			subtotal = subtotal.Add(item.LineTotal)
			totalWeight = totalWeight.Add(item.Quantity)
		}

		delivery := types.Zero()
		if deliveryEnabled {
			delivery = types.NewMoneyFromInt(pricing.DeliveryFee(totalWeight))
		}
		total := subtotal.Add(delivery)

		// Deduct in insertion order. Aggregate demand was pre-validated, so
		// no consume can fail; if one does anyway, the whole copy is
		// discarded and nothing was deducted.
		for _, item := range d.items {
			if _, err := inventory.Consume(prof, item.ProductName, item.Quantity, now); err != nil {
				return err
			}
		}

		committed = profile.Order{
			Number:       prof.NextOrderNumber,
			Date:         types.FormatDate(now),
			Items:        d.Items(),
			Subtotal:     subtotal,
			DeliveryCost: delivery,
			Total:        total,
		}
		prof.Orders = append(prof.Orders, committed)
		prof.NextOrderNumber++

		stats := prof.StatsOf(committed.Date)
		stats.OrdersCount++
		if deliveryEnabled {
			stats.DeliveryCount++
			stats.DeliverySum = stats.DeliverySum.Add(delivery)
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(total)
		return nil
	})
	if err != nil {
		return profile.Order{}, err
	}

	d.state = StateCommitted
	logger.Info(ctx, "order committed",
		"profile", profileName,
		"order_number", committed.Number,
		"items", len(committed.Items),
		"total", committed.Total.String(),
		"delivery", deliveryEnabled,
	)
	return committed, nil
}
