package catalog_repo

import (
	"stockbook/internal/domain/catalogs/producttype"
	"stockbook/internal/infrastructure/storage/postgres"
)

const productTypeTable = "cat_product_types"

// ProductTypeRepo implements producttype.Repository.
type ProductTypeRepo struct {
	*BaseCatalogRepo[*producttype.ProductType]
}

// NewProductTypeRepo creates a new product type repository.
func NewProductTypeRepo(txManager *postgres.TxManager) *ProductTypeRepo {
	return &ProductTypeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*producttype.ProductType](
			txManager,
			productTypeTable,
			postgres.ExtractDBColumns[producttype.ProductType](),
			func() *producttype.ProductType { return &producttype.ProductType{} },
		),
	}
}
