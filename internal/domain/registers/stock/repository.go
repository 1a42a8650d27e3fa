// Package stock provides the stock level register.
package stock

import (
	"context"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// Repository defines operations for the stock register.
type Repository interface {
	// EnsureLevel creates a zero-quantity row for a product if absent.
	EnsureLevel(ctx context.Context, productID id.ID) error

	// ApplyDelta upserts quantity += delta for a product.
	// The update carries a floor guard: a negative result aborts.
	ApplyDelta(ctx context.Context, productID id.ID, delta int64) error

	// GetLevel returns the current level for a product.
	GetLevel(ctx context.Context, productID id.ID) (entity.StockLevel, error)

	// GetLevelForUpdate returns the level with a row lock for stock control.
	GetLevelForUpdate(ctx context.Context, productID id.ID) (entity.StockLevel, error)

	// List returns stock levels with filtering and pagination.
	List(ctx context.Context, filter LevelFilter) (domain.ListResult[entity.StockLevel], error)

	// CountBelow returns the number of products with quantity below threshold.
	CountBelow(ctx context.Context, threshold int64) (int64, error)
}

// LevelFilter for filtering stock level queries.
type LevelFilter struct {
	ProductIDs  []id.ID
	ExcludeZero bool
	MaxQuantity *int64
	Limit       int
	Offset      int
}
