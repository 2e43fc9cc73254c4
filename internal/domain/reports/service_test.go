package reports

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
	"lavka/internal/domain/profile"
	"lavka/internal/infrastructure/storage/jsonstore"
)

func day(s string) time.Time {
	t, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDec(t *testing.T, want string, got types.Money) {
	t.Helper()
	assert.True(t, got.Equal(types.MustMoney(want)),
		"expected %s, got %s", want, got.String())
}

// newFixture seeds a profile with apples (30% profit) and two days of
// orders: two apple sales on the 10th, one mixed sale on the 12th.
func newFixture(t *testing.T) *Service {
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

	item := func(name, qty, price string) profile.OrderItem {
		q := types.MustQuantity(qty)
		p := types.MustMoney(price)
		return profile.OrderItem{
			ProductName:   name,
			Quantity:      q,
			UnitCostPrice: p,
			LineTotal:     q.Mul(p),
		}
	}

	err = profiles.Mutate(ctx, "shop", func(p *profile.Profile) error {
		p.Orders = []profile.Order{
			{
				Number: 1, Date: "2026-08-10",
				Items:    []profile.OrderItem{item("apples", "2", "100")},
				Subtotal: types.MustMoney("200"), DeliveryCost: types.Zero(),
				Total: types.MustMoney("200"),
			},
			{
				Number: 2, Date: "2026-08-10",
				Items:    []profile.OrderItem{item("apples", "1", "100")},
				Subtotal: types.MustMoney("100"), DeliveryCost: types.Zero(),
				Total: types.MustMoney("100"),
			},
			{
				Number: 3, Date: "2026-08-12",
				Items: []profile.OrderItem{
					item("apples", "1", "100"),
					item("pears", "2", "50"),
				},
				Subtotal: types.MustMoney("200"), DeliveryCost: types.MustMoney("200"),
				Total: types.MustMoney("400"),
			},
		}
		p.NextOrderNumber = 4
		p.DailyStats = map[string]*profile.DailyStats{
			"2026-08-12": {OrdersCount: 1, DeliveryCount: 1,
				DeliverySum: types.MustMoney("200"), TotalRevenue: types.MustMoney("400")},
			"2026-08-10": {OrdersCount: 2,
				DeliverySum: types.Zero(), TotalRevenue: types.MustMoney("300")},
		}
		return nil
	})
	require.NoError(t, err)

	return NewService(profiles)
}

func TestSalesAnalysis(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	report, err := svc.SalesAnalysis(ctx, "shop", day("2026-08-01"), day("2026-08-31"), "")
	require.NoError(t, err)

	require.Len(t, report.Rows, 3)

	// Sorted by date, then product. Same-day apple sales are merged.
	assert.Equal(t, "2026-08-10", report.Rows[0].Date)
	assert.Equal(t, "apples", report.Rows[0].Product)
	assertDec(t, "3", report.Rows[0].Quantity)
	assertDec(t, "300", report.Rows[0].Amount)
	assertDec(t, "90", report.Rows[0].Revenue)
	assertDec(t, "210", report.Rows[0].Expenses)

	assert.Equal(t, "2026-08-12", report.Rows[1].Date)
	assert.Equal(t, "apples", report.Rows[1].Product)
	assert.Equal(t, "2026-08-12", report.Rows[2].Date)
	assert.Equal(t, "pears", report.Rows[2].Product)

	assertDec(t, "6", report.TotalQuantity)
	assertDec(t, "500", report.TotalAmount)
}

func TestSalesAnalysisDateWindow(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	report, err := svc.SalesAnalysis(ctx, "shop", day("2026-08-11"), day("2026-08-12"), "")
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "2026-08-12", report.Rows[0].Date)
}

func TestSalesAnalysisProductFilter(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	report, err := svc.SalesAnalysis(ctx, "shop", day("2026-08-01"), day("2026-08-31"), "pears")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "pears", report.Rows[0].Product)
	assertDec(t, "100", report.Rows[0].Amount)
}

func TestSalesAnalysisRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	_, err := svc.SalesAnalysis(ctx, "shop", day("2026-08-31"), day("2026-08-01"), "")
	assert.True(t, apperror.IsValidation(err))
}

func TestOrdersInRange(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	orders, err := svc.OrdersInRange(ctx, "shop", day("2026-08-10"), day("2026-08-10"), "")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = svc.OrdersInRange(ctx, "shop", day("2026-08-01"), day("2026-08-31"), "pears")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(3), orders[0].Number)
}

func TestRecentOrders(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	orders, err := svc.RecentOrders(ctx, "shop", 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(3), orders[0].Number)
	assert.Equal(t, int64(2), orders[1].Number)

	orders, err = svc.RecentOrders(ctx, "shop", 0)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestDailyStatsSorted(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	rows, err := svc.DailyStats(ctx, "shop")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-08-10", rows[0].Date)
	assert.Equal(t, int64(2), rows[0].Stats.OrdersCount)
	assert.Equal(t, "2026-08-12", rows[1].Date)
	assertDec(t, "200", rows[1].Stats.DeliverySum)
}

func TestStockHistoryNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newFixture(t)

	_, err := svc.StockHistory(ctx, "shop", "ghost")
	assert.True(t, apperror.IsNotFound(err))
}
