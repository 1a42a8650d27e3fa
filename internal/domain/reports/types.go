// Package reports provides dashboard aggregation and export reports.
package reports

import (
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// LowStockThreshold is the quantity below which a product counts as low stock.
const LowStockThreshold int64 = 10

// --- Dashboard ---

// DashboardStats is the business summary shown on the dashboard.
// Aggregates are computed from committed data without locks; a stats
// read concurrent with an order commit may briefly trail the ledger.
type DashboardStats struct {
	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalExpenses types.Money `json:"totalExpenses"`
	TotalProfit   types.Money `json:"totalProfit"`

	TotalOrders   int64 `json:"totalOrders"`
	PendingOrders int64 `json:"pendingOrders"`

	LowStockCount int64 `json:"lowStockCount"`

	TotalCustomers int64 `json:"totalCustomers"`
	TotalSuppliers int64 `json:"totalSuppliers"`
}

// OrderCounts aggregates order totals across both order types.
type OrderCounts struct {
	Total   int64
	Pending int64
}

// --- Export ---

// ExportType selects the data set to export.
type ExportType string

const (
	ExportSales     ExportType = "sales"
	ExportPurchases ExportType = "purchases"
	ExportInventory ExportType = "inventory"
)

// IsValidExportType reports whether t is a known export type.
func IsValidExportType(t ExportType) bool {
	switch t {
	case ExportSales, ExportPurchases, ExportInventory:
		return true
	}
	return false
}

// DateRange bounds an export query. Nil bounds mean unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// SalesRow is one exported sales order.
type SalesRow struct {
	OrderNumber   string      `db:"number" json:"orderNumber"`
	Date          time.Time   `db:"date" json:"date"`
	CustomerName  string      `db:"customer_name" json:"customerName"`
	OrderType     string      `db:"order_type" json:"orderType"`
	TotalAmount   types.Money `db:"total_amount" json:"totalAmount"`
	PaymentStatus string      `db:"payment_status" json:"paymentStatus"`
}

// PurchaseRow is one exported purchase order.
type PurchaseRow struct {
	OrderNumber   string      `db:"number" json:"orderNumber"`
	Date          time.Time   `db:"date" json:"date"`
	SupplierName  string      `db:"supplier_name" json:"supplierName"`
	TotalAmount   types.Money `db:"total_amount" json:"totalAmount"`
	PaymentStatus string      `db:"payment_status" json:"paymentStatus"`
}

// InventoryRow is one exported stock level.
type InventoryRow struct {
	ProductID   id.ID     `db:"product_id" json:"productId"`
	SKU         string    `db:"sku" json:"sku"`
	ProductName string    `db:"product_name" json:"productName"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`
}

// Table is a rendered export data set: fixed headers plus value rows.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}
