// Package inventory provides the weighted-average-cost stock ledger.
// Every mutation appends exactly one StockEvent whose balance_after equals
// the resulting quantity; current_quantity never goes negative.
package inventory

import (
	"context"
	"time"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
	"lavka/internal/domain/profile"
	"lavka/pkg/logger"
)

// Restock adds quantity at unitPrice to the product's ledger entry inside
// the given profile snapshot. The entry is lazily materialized.
func Restock(p *profile.Profile, product string, quantity types.Quantity, unitPrice types.Money, at time.Time) (*profile.StockEntry, error) {
	if !quantity.IsPositive() {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if unitPrice.IsNegative() {
		return nil, apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unit_price")
	}

	entry := p.StockOf(product)
	amount := quantity.Mul(unitPrice)
	entry.CurrentQuantity = entry.CurrentQuantity.Add(quantity)
	entry.TotalValue = entry.TotalValue.Add(amount)

	entry.History = append(entry.History, profile.StockEvent{
		Timestamp:     types.FormatTimestamp(at),
		QuantityDelta: quantity,
		UnitPrice:     unitPrice,
		Operation:     profile.OperationRestock,
		Amount:        amount,
		BalanceAfter:  entry.CurrentQuantity,
	})

	return entry, nil
}

// Adjust sets the entry to an absolute quantity and unit price. The delta
// recorded in the event is relative to the previous quantity.
func Adjust(p *profile.Profile, product string, newQuantity types.Quantity, newUnitPrice types.Money, at time.Time) (*profile.StockEntry, error) {
	if newQuantity.IsNegative() {
		return nil, apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if newUnitPrice.IsNegative() {
		return nil, apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unit_price")
	}

	entry := p.StockOf(product)
	oldQuantity := entry.CurrentQuantity
	amount := newQuantity.Mul(newUnitPrice)

	entry.CurrentQuantity = newQuantity
	entry.TotalValue = amount

	entry.History = append(entry.History, profile.StockEvent{
		Timestamp:     types.FormatTimestamp(at),
		QuantityDelta: newQuantity.Sub(oldQuantity),
		UnitPrice:     newUnitPrice,
		Operation:     profile.OperationAdjustment,
		Amount:        amount,
		BalanceAfter:  newQuantity,
	})

	return entry, nil
}

// Consume deducts quantity at the weighted average unit cost. The average
// is unchanged by consumption: quantity and total value scale together.
func Consume(p *profile.Profile, product string, quantity types.Quantity, at time.Time) (*profile.StockEntry, error) {
	if !quantity.IsPositive() {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	entry := p.StockOf(product)
	if quantity.GreaterThan(entry.CurrentQuantity) {
		return nil, apperror.NewInsufficientStock(product,
			quantity.String(), entry.CurrentQuantity.String())
	}

	hadStock := entry.CurrentQuantity.IsPositive()
	avgPrice := entry.AveragePrice()

	entry.CurrentQuantity = entry.CurrentQuantity.Sub(quantity)
	if hadStock {
		entry.TotalValue = entry.CurrentQuantity.Mul(avgPrice)
	} else {
		entry.TotalValue = types.Zero()
	}

	amount := types.Zero()
	if hadStock {
		amount = quantity.Mul(avgPrice)
	}

	entry.History = append(entry.History, profile.StockEvent{
		Timestamp:     types.FormatTimestamp(at),
		QuantityDelta: quantity.Neg(),
		UnitPrice:     avgPrice,
		Operation:     profile.OperationConsumption,
		Amount:        amount,
		BalanceAfter:  entry.CurrentQuantity,
	})

	return entry, nil
}

// Service applies ledger operations to named profiles through the
// repository's copy-validate-publish cycle.
type Service struct {
	profiles *profile.Service
	now      func() time.Time
}

// NewService creates an inventory service. now may be nil for the wall clock.
func NewService(profiles *profile.Service, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{profiles: profiles, now: now}
}

// Restock adds stock for a cataloged product.
func (s *Service) Restock(ctx context.Context, profileName, product string, quantity types.Quantity, unitPrice types.Money) (*profile.StockEntry, error) {
	var result *profile.StockEntry
	err := s.profiles.Mutate(ctx, profileName, func(p *profile.Profile) error {
		if _, ok := p.FindProduct(product); !ok {
			return apperror.NewNotFound("product", product)
		}
		entry, err := Restock(p, product, quantity, unitPrice, s.now())
		if err != nil {
			return err
		}
		result = entry.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock restocked",
		"profile", profileName,
		"product", product,
		"quantity", quantity.String(),
		"unit_price", unitPrice.String(),
	)
	return result, nil
}

// Adjust sets the absolute quantity and unit price for a cataloged product.
func (s *Service) Adjust(ctx context.Context, profileName, product string, newQuantity types.Quantity, newUnitPrice types.Money) (*profile.StockEntry, error) {
	var result *profile.StockEntry
	err := s.profiles.Mutate(ctx, profileName, func(p *profile.Profile) error {
		if _, ok := p.FindProduct(product); !ok {
			return apperror.NewNotFound("product", product)
		}
		entry, err := Adjust(p, product, newQuantity, newUnitPrice, s.now())
		if err != nil {
			return err
		}
		result = entry.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock adjusted",
		"profile", profileName,
		"product", product,
		"quantity", newQuantity.String(),
	)
	return result, nil
}
