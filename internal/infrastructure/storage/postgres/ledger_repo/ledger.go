// Package ledger_repo provides the PostgreSQL cash ledger repository.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/infrastructure/storage/postgres"
)

const ledgerTable = "cash_ledger"

// LedgerRepo implements ledger.Repository.
// Insert-only: the table carries no update path by contract.
type LedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new cash ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert appends a new ledger entry.
func (r *LedgerRepo) Insert(ctx context.Context, entry *ledger.Entry) error {
	q := r.builder.
		Insert(ledgerTable).
		Columns("id", "date", "direction", "category", "amount", "description",
			"related_order_id", "created_by", "created_at").
		Values(entry.ID, entry.Date, entry.Direction, entry.Category, entry.Amount,
			entry.Description, entry.RelatedOrderID, entry.CreatedBy, entry.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	return nil
}

// List returns entries ordered by date, then created_at.
func (r *LedgerRepo) List(ctx context.Context, filter ledger.Filter) (domain.ListResult[*ledger.Entry], error) {
	result := domain.ListResult[*ledger.Entry]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()
	q = applyFilter(q, filter)

	// Count
	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count ledger entries: %w", err)
	}

	q = q.OrderBy("date DESC", "created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select ledger entries: %w", err)
	}

	return result, nil
}

// SumByDirection totals amounts per direction within the range.
func (r *LedgerRepo) SumByDirection(ctx context.Context, direction ledger.Direction, filter ledger.Filter) (types.Money, error) {
	q := r.builder.
		Select("COALESCE(SUM(amount), 0)").
		From(ledgerTable).
		Where(squirrel.Eq{"direction": direction})

	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.To})
	}
	if filter.Category != nil {
		q = q.Where(squirrel.Eq{"category": *filter.Category})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build sum: %w", err)
	}

	var total types.Money
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.Zero(), fmt.Errorf("sum ledger entries: %w", err)
	}

	return total, nil
}

func (r *LedgerRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select("id", "date", "direction", "category", "amount", "description",
			"related_order_id", "created_by", "created_at").
		From(ledgerTable)
}

func applyFilter(q squirrel.SelectBuilder, filter ledger.Filter) squirrel.SelectBuilder {
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.To})
	}
	if filter.Direction != nil {
		q = q.Where(squirrel.Eq{"direction": *filter.Direction})
	}
	if filter.Category != nil {
		q = q.Where(squirrel.Eq{"category": *filter.Category})
	}
	return q
}

// Ensure interface compliance.
var _ ledger.Repository = (*LedgerRepo)(nil)
