package customer

import (
	"context"

	"stockbook/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// Count returns the number of non-deleted customers.
	Count(ctx context.Context) (int64, error)
}
