package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/ledger"
)

type stubReadOnly struct{}

func (stubReadOnly) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (stubReadOnly) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	orders    OrderCounts
	sales     []SalesRow
	purchases []PurchaseRow
	inventory []InventoryRow

	lastRange DateRange
}

func (r *fakeRepo) CountOrders(_ context.Context) (OrderCounts, error) {
	return r.orders, nil
}

func (r *fakeRepo) GetSalesRows(_ context.Context, dateRange DateRange) ([]SalesRow, error) {
	r.lastRange = dateRange
	return r.sales, nil
}

func (r *fakeRepo) GetPurchaseRows(_ context.Context, dateRange DateRange) ([]PurchaseRow, error) {
	r.lastRange = dateRange
	return r.purchases, nil
}

func (r *fakeRepo) GetInventoryRows(_ context.Context) ([]InventoryRow, error) {
	return r.inventory, nil
}

type fakeTotals struct {
	income  types.Money
	expense types.Money
}

func (f *fakeTotals) SumByDirection(_ context.Context, direction ledger.Direction, _ ledger.Filter) (types.Money, error) {
	if direction == ledger.DirectionIncome {
		return f.income, nil
	}
	return f.expense, nil
}

type fakeStockCounter struct{ low int64 }

func (f *fakeStockCounter) CountLowStock(_ context.Context, _ int64) (int64, error) {
	return f.low, nil
}

type fixedCounter int64

func (c fixedCounter) Count(_ context.Context) (int64, error) { return int64(c), nil }

func TestGetDashboardStats(t *testing.T) {
	repo := &fakeRepo{orders: OrderCounts{Total: 18, Pending: 4}}
	totals := &fakeTotals{
		income:  types.MustMoney("2500.00"),
		expense: types.MustMoney("1750.00"),
	}
	svc := NewService(repo, stubReadOnly{}, totals, &fakeStockCounter{low: 3}, fixedCounter(12), fixedCounter(5))

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.TotalRevenue.Equal(types.MustMoney("2500.00")))
	assert.True(t, stats.TotalExpenses.Equal(types.MustMoney("1750.00")))
	assert.True(t, stats.TotalProfit.Equal(types.MustMoney("750.00")),
		"profit is revenue minus expenses, got %s", stats.TotalProfit)
	assert.Equal(t, int64(18), stats.TotalOrders)
	assert.Equal(t, int64(4), stats.PendingOrders)
	assert.Equal(t, int64(3), stats.LowStockCount)
	assert.Equal(t, int64(12), stats.TotalCustomers)
	assert.Equal(t, int64(5), stats.TotalSuppliers)
}

func TestGetDashboardStats_NegativeProfit(t *testing.T) {
	totals := &fakeTotals{
		income:  types.MustMoney("100.00"),
		expense: types.MustMoney("300.00"),
	}
	svc := NewService(&fakeRepo{}, stubReadOnly{}, totals, &fakeStockCounter{}, fixedCounter(0), fixedCounter(0))

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.TotalProfit.Equal(types.MustMoney("-200.00")))
}

func TestBuildExport_Sales(t *testing.T) {
	repo := &fakeRepo{
		sales: []SalesRow{
			{
				OrderNumber:   "SO-2026-00001",
				Date:          time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
				CustomerName:  "Downtown Office Center",
				OrderType:     "normal",
				TotalAmount:   types.MustMoney("99.50"),
				PaymentStatus: "paid",
			},
			{
				OrderNumber:   "SO-2026-00002",
				Date:          time.Date(2026, 8, 16, 10, 0, 0, 0, time.UTC),
				CustomerName:  "",
				OrderType:     "livestream",
				TotalAmount:   types.MustMoney("15.00"),
				PaymentStatus: "unpaid",
			},
		},
	}
	svc := NewService(repo, stubReadOnly{}, &fakeTotals{}, &fakeStockCounter{}, fixedCounter(0), fixedCounter(0))

	table, err := svc.BuildExport(context.Background(), ExportSales, DateRange{})
	require.NoError(t, err)

	assert.Equal(t, "Sales Orders", table.Title)
	assert.Equal(t,
		[]string{"Order ID", "Date", "Customer", "Type", "Total Amount", "Payment Status"},
		table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "SO-2026-00001", table.Rows[0][0])
	assert.Equal(t, "2026-08-15", table.Rows[0][1])

	// Walk-in sales render a dash instead of an empty customer cell
	assert.Equal(t, "-", table.Rows[1][2])
}

func TestBuildExport_Purchases(t *testing.T) {
	repo := &fakeRepo{
		purchases: []PurchaseRow{
			{
				OrderNumber:   "PO-2026-00007",
				Date:          time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
				SupplierName:  "Prime Paper Supply Co.",
				TotalAmount:   types.MustMoney("410.00"),
				PaymentStatus: "partial",
			},
		},
	}
	svc := NewService(repo, stubReadOnly{}, &fakeTotals{}, &fakeStockCounter{}, fixedCounter(0), fixedCounter(0))

	table, err := svc.BuildExport(context.Background(), ExportPurchases, DateRange{})
	require.NoError(t, err)

	assert.Equal(t, "Purchase Orders", table.Title)
	assert.Equal(t,
		[]string{"PO ID", "Date", "Supplier", "Total Amount", "Payment Status"},
		table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Prime Paper Supply Co.", table.Rows[0][2])
}

func TestBuildExport_Inventory(t *testing.T) {
	productID := id.New()
	repo := &fakeRepo{
		inventory: []InventoryRow{
			{
				ProductID:   productID,
				SKU:         "PAP-A4",
				ProductName: "Office paper A4",
				Quantity:    37,
				LastUpdated: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
			},
		},
	}
	svc := NewService(repo, stubReadOnly{}, &fakeTotals{}, &fakeStockCounter{}, fixedCounter(0), fixedCounter(0))

	table, err := svc.BuildExport(context.Background(), ExportInventory, DateRange{})
	require.NoError(t, err)

	assert.Equal(t, "Inventory", table.Title)
	assert.Equal(t,
		[]string{"Product ID", "SKU", "Product Name", "Quantity", "Last Updated"},
		table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, productID.String(), table.Rows[0][0])
	assert.Equal(t, "2026-08-20 09:30", table.Rows[0][4])
}

func TestBuildExport_PassesDateRange(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, stubReadOnly{}, &fakeTotals{}, &fakeStockCounter{}, fixedCounter(0), fixedCounter(0))

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := svc.BuildExport(context.Background(), ExportSales, DateRange{From: &from, To: &to})
	require.NoError(t, err)

	require.NotNil(t, repo.lastRange.From)
	require.NotNil(t, repo.lastRange.To)
	assert.Equal(t, from, *repo.lastRange.From)
	assert.Equal(t, to, *repo.lastRange.To)
}

func TestBuildExport_RejectsUnknownType(t *testing.T) {
	svc := NewService(&fakeRepo{}, stubReadOnly{}, &fakeTotals{}, &fakeStockCounter{}, fixedCounter(0), fixedCounter(0))

	_, err := svc.BuildExport(context.Background(), ExportType("pdf"), DateRange{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestBuildExport_RejectsInvertedRange(t *testing.T) {
	svc := NewService(&fakeRepo{}, stubReadOnly{}, &fakeTotals{}, &fakeStockCounter{}, fixedCounter(0), fixedCounter(0))

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.BuildExport(context.Background(), ExportSales, DateRange{From: &from, To: &to})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
