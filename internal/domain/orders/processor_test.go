package orders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/profile"
	"lavka/internal/infrastructure/storage/jsonstore"
)

var testTime = time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

func assertDec(t *testing.T, want string, got types.Money) {
	t.Helper()
	assert.True(t, got.Equal(types.MustMoney(want)),
		"expected %s, got %s", want, got.String())
}

// newFixture builds a processor over a profile that has apples at 100/kg
// with 10 kg in stock and pears at 50/kg with 4 kg in stock.
func newFixture(t *testing.T) (*Processor, *profile.Service) {
	t.Helper()
	ctx := context.Background()

	store, err := jsonstore.New(jsonstore.Config{
		Path: filepath.Join(t.TempDir(), "db.json"),
	})
	require.NoError(t, err)

	profiles, err := profile.NewService(ctx, store)
	require.NoError(t, err)

	_, err = profiles.AddProduct(ctx, "shop", "apples", types.MustMoney("100"), types.MustMoney("30"))
	require.NoError(t, err)
	_, err = profiles.AddProduct(ctx, "shop", "pears", types.MustMoney("50"), types.MustMoney("10"))
	require.NoError(t, err)

	inv := inventory.NewService(profiles, func() time.Time { return testTime })
	_, err = inv.Restock(ctx, "shop", "apples", types.MustQuantity("10"), types.MustMoney("70"))
	require.NoError(t, err)
	_, err = inv.Restock(ctx, "shop", "pears", types.MustQuantity("4"), types.MustMoney("40"))
	require.NoError(t, err)

	return NewProcessor(profiles, func() time.Time { return testTime }), profiles
}

func TestDraftStateTransitions(t *testing.T) {
	_, profiles := newFixture(t)
	p, err := profiles.Get(context.Background(), "shop")
	require.NoError(t, err)

	d := NewDraft()
	assert.Equal(t, StateEmpty, d.State())

	require.NoError(t, d.AddItem(p, "apples", types.MustQuantity("2")))
	assert.Equal(t, StateAccumulating, d.State())

	items := d.Items()
	require.Len(t, items, 1)
	assertDec(t, "100", items[0].UnitCostPrice)
	assertDec(t, "200", items[0].LineTotal)
}

func TestDraftAddItemRejections(t *testing.T) {
	_, profiles := newFixture(t)
	p, err := profiles.Get(context.Background(), "shop")
	require.NoError(t, err)

	d := NewDraft()

	err = d.AddItem(p, "ghost", types.MustQuantity("1"))
	assert.True(t, apperror.IsNotFound(err))

	err = d.AddItem(p, "apples", types.MustQuantity("0"))
	assert.True(t, apperror.IsValidation(err))

	err = d.AddItem(p, "apples", types.MustQuantity("11"))
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, StateEmpty, d.State())
}

func TestCommitDeductsStockAndNumbersOrders(t *testing.T) {
	ctx := context.Background()
	proc, profiles := newFixture(t)
	p, err := profiles.Get(ctx, "shop")
	require.NoError(t, err)

	d := NewDraft()
	require.NoError(t, d.AddItem(p, "apples", types.MustQuantity("2")))
	require.NoError(t, d.AddItem(p, "pears", types.MustQuantity("1")))

	order, err := proc.Commit(ctx, "shop", d, false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), order.Number)
	assert.Equal(t, "2026-08-15", order.Date)
	assertDec(t, "250", order.Subtotal)
	assertDec(t, "0", order.DeliveryCost)
	assertDec(t, "250", order.Total)
	assert.Equal(t, StateCommitted, d.State())

	after, err := profiles.Get(ctx, "shop")
	require.NoError(t, err)
	assertDec(t, "8", after.Stock["apples"].CurrentQuantity)
	assertDec(t, "3", after.Stock["pears"].CurrentQuantity)
	assert.Equal(t, int64(2), after.NextOrderNumber)
	require.Len(t, after.Orders, 1)

	// A second order gets the next number.
	d2 := NewDraft()
	require.NoError(t, d2.AddItem(after, "apples", types.MustQuantity("1")))
	order2, err := proc.Commit(ctx, "shop", d2, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), order2.Number)
}

func TestCommitDeliveryFeeTiers(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		wantFee  string
	}{
		{"heavy order", "5", "100"},
		{"medium order", "3", "150"},
		{"light order", "2", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			proc, profiles := newFixture(t)
			p, err := profiles.Get(ctx, "shop")
			require.NoError(t, err)

			d := NewDraft()
			require.NoError(t, d.AddItem(p, "apples", types.MustQuantity(tt.quantity)))

			order, err := proc.Commit(ctx, "shop", d, true)
			require.NoError(t, err)

			assertDec(t, tt.wantFee, order.DeliveryCost)
			assert.True(t, order.Total.Equal(order.Subtotal.Add(order.DeliveryCost)))
		})
	}
}

func TestCommitAggregateDemandFailsAtomically(t *testing.T) {
	ctx := context.Background()
	proc, profiles := newFixture(t)
	p, err := profiles.Get(ctx, "shop")
	require.NoError(t, err)

	// Each line passes its own availability check against 4 kg of pears,
	// but together they demand 6 kg.
	d := NewDraft()
	require.NoError(t, d.AddItem(p, "pears", types.MustQuantity("3")))
	require.NoError(t, d.AddItem(p, "pears", types.MustQuantity("3")))

	_, err = proc.Commit(ctx, "shop", d, false)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Nothing was deducted, recorded or counted.
	after, err := profiles.Get(ctx, "shop")
	require.NoError(t, err)
	assertDec(t, "4", after.Stock["pears"].CurrentQuantity)
	assert.Empty(t, after.Orders)
	assert.Empty(t, after.DailyStats)
	assert.Equal(t, int64(1), after.NextOrderNumber)
	assert.NotEqual(t, StateCommitted, d.State())
}

func TestCommitUpdatesDailyStats(t *testing.T) {
	ctx := context.Background()
	proc, profiles := newFixture(t)
	p, err := profiles.Get(ctx, "shop")
	require.NoError(t, err)

	d := NewDraft()
	require.NoError(t, d.AddItem(p, "apples", types.MustQuantity("5")))
	_, err = proc.Commit(ctx, "shop", d, true)
	require.NoError(t, err)

	p, err = profiles.Get(ctx, "shop")
	require.NoError(t, err)
	d2 := NewDraft()
	require.NoError(t, d2.AddItem(p, "pears", types.MustQuantity("1")))
	_, err = proc.Commit(ctx, "shop", d2, false)
	require.NoError(t, err)

	after, err := profiles.Get(ctx, "shop")
	require.NoError(t, err)
	stats := after.DailyStats["2026-08-15"]
	require.NotNil(t, stats)

	assert.Equal(t, int64(2), stats.OrdersCount)
	assert.Equal(t, int64(1), stats.DeliveryCount)
	assertDec(t, "100", stats.DeliverySum)
	// 5 kg of apples at 100 plus 100 delivery, plus 1 kg of pears at 50.
	assertDec(t, "650", stats.TotalRevenue)
}

func TestCommitEmptyDraft(t *testing.T) {
	ctx := context.Background()
	proc, _ := newFixture(t)

	_, err := proc.Commit(ctx, "shop", NewDraft(), false)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCommitTwiceRejected(t *testing.T) {
	ctx := context.Background()
	proc, profiles := newFixture(t)
	p, err := profiles.Get(ctx, "shop")
	require.NoError(t, err)

	d := NewDraft()
	require.NoError(t, d.AddItem(p, "apples", types.MustQuantity("1")))
	_, err = proc.Commit(ctx, "shop", d, false)
	require.NoError(t, err)

	_, err = proc.Commit(ctx, "shop", d, false)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	err = d.AddItem(p, "apples", types.MustQuantity("1"))
	assert.True(t, apperror.IsValidation(err))
}
