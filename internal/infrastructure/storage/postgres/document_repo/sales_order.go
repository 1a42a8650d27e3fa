package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/sales_order"
	"stockbook/internal/infrastructure/storage/postgres"
)

const (
	salesOrdersTable     = "doc_sales_orders"
	salesOrderLinesTable = "doc_sales_order_lines"
)

// SalesOrderRepo implements sales_order.Repository.
type SalesOrderRepo struct {
	*BaseDocumentRepo[*sales_order.SalesOrder]
	inserter *postgres.BatchInserter
}

// NewSalesOrderRepo creates a new sales order repository.
func NewSalesOrderRepo(txManager *postgres.TxManager) *SalesOrderRepo {
	return &SalesOrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*sales_order.SalesOrder](
			txManager,
			salesOrdersTable,
			postgres.ExtractDBColumns[sales_order.SalesOrder](),
			func() *sales_order.SalesOrder { return &sales_order.SalesOrder{} },
		),
		inserter: postgres.NewBatchInserter(txManager),
	}
}

// GetLines retrieves lines for a sales order.
func (r *SalesOrderRepo) GetLines(ctx context.Context, docID id.ID) ([]sales_order.Line, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "product_name", "quantity", "unit_price", "total").
		From(salesOrderLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sales_order.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a sales order (delete existing + bulk insert).
func (r *SalesOrderRepo) SaveLines(ctx context.Context, docID id.ID, lines []sales_order.Line) error {
	querier := r.txManager.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + salesOrderLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	columns := []string{"line_id", "document_id", "line_no", "product_id", "product_name", "quantity", "unit_price", "total"}
	rows := make([][]any, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []any{
			line.LineID, docID, line.LineNo, line.ProductID, line.ProductName,
			line.Quantity, line.UnitPrice, line.Total,
		})
	}

	if _, err := r.inserter.CopyFromSlice(ctx, salesOrderLinesTable, columns, rows); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves sales orders with filtering.
func (r *SalesOrderRepo) List(ctx context.Context, filter sales_order.ListFilter) (domain.ListResult[*sales_order.SalesOrder], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.OrderType != nil {
		q = q.Where(squirrel.Eq{"order_type": *filter.OrderType})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"customer_name": searchPattern},
		})
	}

	return r.list(ctx, q, filter.ListFilter)
}

// Count returns the number of non-deleted sales orders.
func (r *SalesOrderRepo) Count(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, squirrel.Eq{"deletion_mark": false})
}

// CountPending returns the number of sales orders not yet fully paid.
func (r *SalesOrderRepo) CountPending(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, squirrel.And{
		squirrel.Eq{"deletion_mark": false},
		squirrel.NotEq{"payment_status": documents.PaymentPaid},
	})
}

func (r *SalesOrderRepo) countWhere(ctx context.Context, pred any) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(salesOrdersTable).
		Where(pred)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return count, nil
}
