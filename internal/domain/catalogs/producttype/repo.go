package producttype

import (
	"stockbook/internal/domain"
)

// Repository defines the interface for ProductType persistence.
type Repository interface {
	domain.CatalogRepository[*ProductType]
}
