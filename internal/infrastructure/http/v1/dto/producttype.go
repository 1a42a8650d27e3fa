package dto

import (
	"stockbook/internal/domain/catalogs/producttype"
)

// --- Request DTOs ---

// CreateProductTypeRequest is the request body for creating a product type.
type CreateProductTypeRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductTypeRequest) ToEntity() *producttype.ProductType {
	return producttype.NewProductType(r.Code, r.Name, r.CategoryID)
}

// UpdateProductTypeRequest is the request body for updating a product type.
type UpdateProductTypeRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
	Version    int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductTypeRequest) ApplyTo(t *producttype.ProductType) {
	t.Name = r.Name
	t.CategoryID = r.CategoryID
	t.Version = r.Version
}

// --- Response DTOs ---

// ProductTypeResponse is the response body for a product type.
type ProductTypeResponse struct {
	CatalogResponse
	CategoryID string `json:"categoryId"`
}

// FromProductType creates response DTO from domain entity.
func FromProductType(t *producttype.ProductType) *ProductTypeResponse {
	return &ProductTypeResponse{
		CatalogResponse: FromCatalog(t.Catalog),
		CategoryID:      t.CategoryID,
	}
}
