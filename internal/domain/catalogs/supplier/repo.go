package supplier

import (
	"context"

	"stockbook/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// Count returns the number of non-deleted suppliers.
	Count(ctx context.Context) (int64, error)
}
