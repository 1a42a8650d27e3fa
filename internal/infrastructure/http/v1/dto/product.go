package dto

import (
	"stockbook/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	SKU         string  `json:"sku" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	CategoryID  string  `json:"categoryId" binding:"required"`
	TypeID      string  `json:"typeId" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.SKU, r.Name, r.CategoryID, r.TypeID)
	p.Description = r.Description
	return p
}

// UpdateProductRequest is the request body for updating a product.
// SKU is immutable and deliberately absent.
type UpdateProductRequest struct {
	Name        string         `json:"name" binding:"required"`
	CategoryID  string         `json:"categoryId" binding:"required"`
	TypeID      string         `json:"typeId" binding:"required"`
	Status      product.Status `json:"status" binding:"required"`
	Description *string        `json:"description"`
	Version     int            `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.CategoryID = r.CategoryID
	p.TypeID = r.TypeID
	p.Status = r.Status
	p.Description = r.Description
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	SKU         string         `json:"sku"`
	CategoryID  string         `json:"categoryId"`
	TypeID      string         `json:"typeId"`
	Status      product.Status `json:"status"`
	Description *string        `json:"description,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		SKU:             p.SKU,
		CategoryID:      p.CategoryID,
		TypeID:          p.TypeID,
		Status:          p.Status,
		Description:     p.Description,
	}
}
