// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/infrastructure/storage/postgres"
)

const stockLevelsTable = "reg_stock_levels"

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EnsureLevel creates a zero-quantity row for a product if absent.
func (r *StockRepo) EnsureLevel(ctx context.Context, productID id.ID) error {
	sql := `
		INSERT INTO reg_stock_levels (product_id, quantity, last_updated)
		VALUES ($1, 0, NOW())
		ON CONFLICT (product_id) DO NOTHING
	`

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, productID); err != nil {
		return fmt.Errorf("ensure stock level: %w", err)
	}

	return nil
}

// ApplyDelta applies quantity += delta for a product.
// Receipts upsert the row; issues run a guarded UPDATE so the quantity
// never drops below zero, even when the reservation step was skipped.
// An absent row counts as zero available.
func (r *StockRepo) ApplyDelta(ctx context.Context, productID id.ID, delta int64) error {
	return applyDelta(ctx, r.txManager.GetQuerier(ctx), productID, delta)
}

func applyDelta(ctx context.Context, querier postgres.Querier, productID id.ID, delta int64) error {
	if delta >= 0 {
		sql := `
			INSERT INTO reg_stock_levels (product_id, quantity, last_updated)
			VALUES ($1, $2, NOW())
			ON CONFLICT (product_id) DO UPDATE
			SET quantity = reg_stock_levels.quantity + EXCLUDED.quantity,
			    last_updated = NOW()
		`
		if _, err := querier.Exec(ctx, sql, productID, delta); err != nil {
			return fmt.Errorf("apply stock delta: %w", err)
		}
		return nil
	}

	sql := `
		UPDATE reg_stock_levels
		SET quantity = quantity + $2,
		    last_updated = NOW()
		WHERE product_id = $1 AND quantity + $2 >= 0
	`
	result, err := querier.Exec(ctx, sql, productID, delta)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Row absent, or the floor guard rejected the issue
		var available int64
		readErr := querier.QueryRow(ctx,
			`SELECT quantity FROM reg_stock_levels WHERE product_id = $1`,
			productID,
		).Scan(&available)
		switch {
		case errors.Is(readErr, pgx.ErrNoRows):
			available = 0
		case readErr != nil:
			return fmt.Errorf("read stock level after rejected issue: %w", readErr)
		}
		return apperror.NewInsufficientStock(productID.String(), -delta, available)
	}

	return nil
}

// GetLevel returns the current level for a product.
func (r *StockRepo) GetLevel(ctx context.Context, productID id.ID) (entity.StockLevel, error) {
	var level entity.StockLevel

	q := r.builder.
		Select("product_id", "quantity", "last_updated").
		From(stockLevelsTable).
		Where(squirrel.Eq{"product_id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return level, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &level, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return level, apperror.NewNotFound("stock_level", productID.String())
		}
		return level, fmt.Errorf("get stock level: %w", err)
	}

	return level, nil
}

// GetLevelForUpdate returns the level with a row lock.
func (r *StockRepo) GetLevelForUpdate(ctx context.Context, productID id.ID) (entity.StockLevel, error) {
	var level entity.StockLevel

	sql := `
		SELECT product_id, quantity, last_updated
		FROM reg_stock_levels
		WHERE product_id = $1
		FOR UPDATE
	`

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &level, sql, productID); err != nil {
		if pgxscan.NotFound(err) {
			return level, apperror.NewNotFound("stock_level", productID.String())
		}
		return level, fmt.Errorf("get stock level for update: %w", err)
	}

	return level, nil
}

// List returns stock levels with filtering and pagination.
func (r *StockRepo) List(ctx context.Context, filter stock.LevelFilter) (domain.ListResult[entity.StockLevel], error) {
	result := domain.ListResult[entity.StockLevel]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.
		Select("product_id", "quantity", "last_updated").
		From(stockLevelsTable)

	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": filter.ProductIDs})
	}

	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"quantity": int64(0)})
	}

	if filter.MaxQuantity != nil {
		q = q.Where(squirrel.LtOrEq{"quantity": *filter.MaxQuantity})
	}

	// Count
	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count stock levels: %w", err)
	}

	q = q.OrderBy("product_id")

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
		return result, fmt.Errorf("select stock levels: %w", err)
	}

	return result, nil
}

// CountBelow returns the number of products with quantity below threshold.
func (r *StockRepo) CountBelow(ctx context.Context, threshold int64) (int64, error) {
	q := r.builder.
		Select("COUNT(*)").
		From(stockLevelsTable).
		Where(squirrel.Lt{"quantity": threshold})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}

	return count, nil
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)
