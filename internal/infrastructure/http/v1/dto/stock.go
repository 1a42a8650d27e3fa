package dto

import (
	"time"

	"stockbook/internal/core/entity"
)

// --- Response DTOs ---

// StockLevelResponse is one stock register row.
type StockLevelResponse struct {
	ProductID   string    `json:"productId"`
	Quantity    int64     `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// FromStockLevel creates response DTO from register entry.
func FromStockLevel(l entity.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID:   l.ProductID.String(),
		Quantity:    l.Quantity,
		LastUpdated: l.LastUpdated,
	}
}

// ProductQuantityResponse is the on-hand quantity for one product.
type ProductQuantityResponse struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}
