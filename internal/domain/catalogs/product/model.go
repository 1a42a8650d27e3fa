// Package product provides the Product catalog.
// Products are the items tracked by the stock register and referenced
// by purchase and sales order lines.
package product

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
)

// Status defines product lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Product represents a stocked item.
type Product struct {
	entity.Catalog

	// SKU is the unique stock keeping unit. Immutable after creation.
	SKU string `db:"sku" json:"sku"`

	// CategoryID is the owning category
	CategoryID string `db:"category_id" json:"categoryId"`

	// TypeID is the product type within the category
	TypeID string `db:"type_id" json:"typeId"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(sku, name, categoryID, typeID string) *Product {
	return &Product{
		Catalog:    entity.NewCatalog(sku, name),
		SKU:        sku,
		CategoryID: categoryID,
		TypeID:     typeID,
		Status:     StatusActive,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if !isValidStatus(p.Status) {
		return apperror.NewValidation("invalid product status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}

	return nil
}

// IsActive returns true if product can be used in new orders.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive && !p.DeletionMark
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}
