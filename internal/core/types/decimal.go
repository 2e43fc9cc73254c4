// Package types provides common type aliases and utilities.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// Quantity represents a weight in kilograms with full precision.
// Same underlying representation as Money so ledger math (quantity × price)
// never leaves the decimal domain.
type Quantity = decimal.Decimal

func init() {
	// The persisted document encodes quantities and amounts as plain JSON
	// numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// NewMoneyFromInt creates a Money value from whole currency units.
func NewMoneyFromInt(v int64) Money {
	return decimal.NewFromInt(v)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// NewQuantity creates a Quantity from a float.
func NewQuantity(f float64) Quantity {
	return decimal.NewFromFloat(f)
}

// MustQuantity creates a Quantity from a string, panics on error.
// Use only for constants.
func MustQuantity(s string) Quantity {
	return MustMoney(s)
}

// Date and timestamp layouts of the persisted document.
const (
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05"
)

// FormatDate renders t in the document date layout.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatTimestamp renders t in the document timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// ParseDate parses a document date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
