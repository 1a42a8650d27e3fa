package handlers

import (
	"stockbook/internal/domain/catalogs/producttype"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ProductTypeHTTPHandler keeps function signatures short.
type ProductTypeHTTPHandler = CatalogHandler[
	*producttype.ProductType,
	dto.CreateProductTypeRequest,
	dto.UpdateProductTypeRequest,
]

// NewProductTypeHandler hides the generic handler setup from the router.
func NewProductTypeHandler(
	base *BaseHandler,
	service *producttype.Service,
) *ProductTypeHTTPHandler {
	config := CatalogHandlerConfig[
		*producttype.ProductType,
		dto.CreateProductTypeRequest,
		dto.UpdateProductTypeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product_type",

		MapCreateDTO: func(req dto.CreateProductTypeRequest) *producttype.ProductType {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductTypeRequest, existing *producttype.ProductType) *producttype.ProductType {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *producttype.ProductType) any {
			return dto.FromProductType(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
