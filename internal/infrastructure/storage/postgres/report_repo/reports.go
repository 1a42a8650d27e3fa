// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CountOrders aggregates totals across purchase and sales orders.
func (r *ReportRepo) CountOrders(ctx context.Context) (reports.OrderCounts, error) {
	var counts reports.OrderCounts

	sql := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE payment_status <> 'paid') AS pending
		FROM (
			SELECT payment_status FROM doc_purchase_orders WHERE deletion_mark = false
			UNION ALL
			SELECT payment_status FROM doc_sales_orders WHERE deletion_mark = false
		) orders
	`

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql).Scan(&counts.Total, &counts.Pending); err != nil {
		return counts, fmt.Errorf("count orders: %w", err)
	}

	return counts, nil
}

// GetSalesRows returns sales orders for export, newest first.
func (r *ReportRepo) GetSalesRows(ctx context.Context, dateRange reports.DateRange) ([]reports.SalesRow, error) {
	q := r.builder.
		Select("number", "date", "customer_name", "order_type", "total_amount", "payment_status").
		From("doc_sales_orders").
		Where(squirrel.Eq{"deletion_mark": false})

	q = applyDateRange(q, dateRange)
	q = q.OrderBy("date DESC", "number DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.SalesRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select sales rows: %w", err)
	}

	return rows, nil
}

// GetPurchaseRows returns purchase orders for export, newest first.
func (r *ReportRepo) GetPurchaseRows(ctx context.Context, dateRange reports.DateRange) ([]reports.PurchaseRow, error) {
	q := r.builder.
		Select("number", "date", "supplier_name", "total_amount", "payment_status").
		From("doc_purchase_orders").
		Where(squirrel.Eq{"deletion_mark": false})

	q = applyDateRange(q, dateRange)
	q = q.OrderBy("date DESC", "number DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.PurchaseRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select purchase rows: %w", err)
	}

	return rows, nil
}

// GetInventoryRows returns current stock levels joined with product data.
func (r *ReportRepo) GetInventoryRows(ctx context.Context) ([]reports.InventoryRow, error) {
	sql := `
		SELECT
			l.product_id,
			p.sku,
			p.name AS product_name,
			l.quantity,
			l.last_updated
		FROM reg_stock_levels l
		JOIN cat_products p ON p.id = l.product_id
		WHERE p.deletion_mark = false
		ORDER BY p.name
	`

	var rows []reports.InventoryRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql); err != nil {
		return nil, fmt.Errorf("select inventory rows: %w", err)
	}

	return rows, nil
}

func applyDateRange(q squirrel.SelectBuilder, dateRange reports.DateRange) squirrel.SelectBuilder {
	if dateRange.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *dateRange.From})
	}
	if dateRange.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *dateRange.To})
	}
	return q
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)
