package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// CountOrders aggregates totals across purchase and sales orders.
	CountOrders(ctx context.Context) (OrderCounts, error)

	// Export row queries
	GetSalesRows(ctx context.Context, dateRange DateRange) ([]SalesRow, error)
	GetPurchaseRows(ctx context.Context, dateRange DateRange) ([]PurchaseRow, error)
	GetInventoryRows(ctx context.Context) ([]InventoryRow, error)
}
