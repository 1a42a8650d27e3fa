package reports

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/ledger"
)

// LedgerTotals sums cash flow per direction.
type LedgerTotals interface {
	SumByDirection(ctx context.Context, direction ledger.Direction, filter ledger.Filter) (types.Money, error)
}

// StockCounter counts low-stock products.
type StockCounter interface {
	CountLowStock(ctx context.Context, threshold int64) (int64, error)
}

// CatalogCounter counts catalog entities.
type CatalogCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Service provides dashboard and export report operations.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
	cashbook  LedgerTotals
	stock     StockCounter
	customers CatalogCounter
	suppliers CatalogCounter
}

// NewService creates a new reports service.
func NewService(
	repo Repository,
	txManager tx.ReadOnlyManager,
	cashbook LedgerTotals,
	stock StockCounter,
	customers CatalogCounter,
	suppliers CatalogCounter,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		cashbook:  cashbook,
		stock:     stock,
		customers: customers,
		suppliers: suppliers,
	}
}

// GetDashboardStats computes the business summary over one read-only
// transaction. Profit is always revenue minus expenses, derived from
// the same two sums it reports.
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats *DashboardStats
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.computeStats(ctx)
		return err
	})
	return stats, err
}

func (s *Service) computeStats(ctx context.Context) (*DashboardStats, error) {
	revenue, err := s.cashbook.SumByDirection(ctx, ledger.DirectionIncome, ledger.Filter{})
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	expenses, err := s.cashbook.SumByDirection(ctx, ledger.DirectionExpense, ledger.Filter{})
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	orders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	lowStock, err := s.stock.CountLowStock(ctx, LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}

	customers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	suppliers, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count suppliers: %w", err)
	}

	return &DashboardStats{
		TotalRevenue:   revenue,
		TotalExpenses:  expenses,
		TotalProfit:    revenue.Sub(expenses),
		TotalOrders:    orders.Total,
		PendingOrders:  orders.Pending,
		LowStockCount:  lowStock,
		TotalCustomers: customers,
		TotalSuppliers: suppliers,
	}, nil
}

// BuildExport assembles the data set for a spreadsheet export.
// The column sets are fixed per export type.
func (s *Service) BuildExport(ctx context.Context, exportType ExportType, dateRange DateRange) (*Table, error) {
	if !IsValidExportType(exportType) {
		return nil, apperror.NewValidation("invalid export type").
			WithDetail("field", "type").
			WithDetail("value", string(exportType))
	}

	if dateRange.From != nil && dateRange.To != nil && dateRange.From.After(*dateRange.To) {
		return nil, apperror.NewValidation("from must not be after to").
			WithDetail("field", "dateRange")
	}

	var table *Table
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		switch exportType {
		case ExportSales:
			table, err = s.buildSalesTable(ctx, dateRange)
		case ExportPurchases:
			table, err = s.buildPurchasesTable(ctx, dateRange)
		default:
			table, err = s.buildInventoryTable(ctx)
		}
		return err
	})
	return table, err
}

func (s *Service) buildSalesTable(ctx context.Context, dateRange DateRange) (*Table, error) {
	rows, err := s.repo.GetSalesRows(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("get sales rows: %w", err)
	}

	table := &Table{
		Title:   "Sales Orders",
		Headers: []string{"Order ID", "Date", "Customer", "Type", "Total Amount", "Payment Status"},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		customerName := r.CustomerName
		if customerName == "" {
			customerName = "-"
		}
		table.Rows = append(table.Rows, []any{
			r.OrderNumber,
			r.Date.Format("2006-01-02"),
			customerName,
			r.OrderType,
			r.TotalAmount.InexactFloat64(),
			r.PaymentStatus,
		})
	}
	return table, nil
}

func (s *Service) buildPurchasesTable(ctx context.Context, dateRange DateRange) (*Table, error) {
	rows, err := s.repo.GetPurchaseRows(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("get purchase rows: %w", err)
	}

	table := &Table{
		Title:   "Purchase Orders",
		Headers: []string{"PO ID", "Date", "Supplier", "Total Amount", "Payment Status"},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []any{
			r.OrderNumber,
			r.Date.Format("2006-01-02"),
			r.SupplierName,
			r.TotalAmount.InexactFloat64(),
			r.PaymentStatus,
		})
	}
	return table, nil
}

func (s *Service) buildInventoryTable(ctx context.Context) (*Table, error) {
	rows, err := s.repo.GetInventoryRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("get inventory rows: %w", err)
	}

	table := &Table{
		Title:   "Inventory",
		Headers: []string{"Product ID", "SKU", "Product Name", "Quantity", "Last Updated"},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []any{
			r.ProductID.String(),
			r.SKU,
			r.ProductName,
			r.Quantity,
			r.LastUpdated.Format("2006-01-02 15:04"),
		})
	}
	return table, nil
}
