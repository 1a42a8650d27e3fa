// Package entity provides core domain entities.
package entity

import (
	"time"

	"stockbook/internal/core/id"
)

// RecordType defines movement direction for stock adjustments.
type RecordType string

const (
	// RecordTypeReceipt increases balance (inbound)
	RecordTypeReceipt RecordType = "receipt"
	// RecordTypeExpense decreases balance (outbound)
	RecordTypeExpense RecordType = "expense"
)

// StockLevel represents the current on-hand quantity for a product.
// One row per product; created lazily on first touch and never deleted.
type StockLevel struct {
	// Dimension
	ProductID id.ID `db:"product_id" json:"productId"`

	// Resource
	Quantity int64 `db:"quantity" json:"quantity"`

	// Metadata
	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`
}

// NewStockLevel creates a zero-quantity stock level for a product.
func NewStockLevel(productID id.ID) StockLevel {
	return StockLevel{
		ProductID:   productID,
		Quantity:    0,
		LastUpdated: time.Now().UTC(),
	}
}

// StockMovement is one signed quantity change applied by a document line.
type StockMovement struct {
	ProductID  id.ID      `db:"product_id" json:"productId"`
	RecordType RecordType `db:"record_type" json:"recordType"`
	Quantity   int64      `db:"quantity" json:"quantity"`
}

// SignedQuantity returns quantity with sign based on record type.
// Receipt = positive, Expense = negative.
func (m *StockMovement) SignedQuantity() int64 {
	if m.RecordType == RecordTypeExpense {
		return -m.Quantity
	}
	return m.Quantity
}
