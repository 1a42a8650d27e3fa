// Package producttype provides the product type catalog.
// A product type is a finer classification inside a category.
package producttype

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
)

// ProductType classifies products within a category.
type ProductType struct {
	entity.Catalog

	// CategoryID is the owning category
	CategoryID string `db:"category_id" json:"categoryId"`
}

// NewProductType creates a new ProductType with required fields.
func NewProductType(code, name, categoryID string) *ProductType {
	return &ProductType{
		Catalog:    entity.NewCatalog(code, name),
		CategoryID: categoryID,
	}
}

// Validate implements entity.Validatable interface.
func (t *ProductType) Validate(ctx context.Context) error {
	if err := t.Catalog.Validate(ctx); err != nil {
		return err
	}

	if t.CategoryID == "" {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}

	return nil
}
