// Package purchase_order provides the PurchaseOrder document repository.
package purchase_order

import (
	"context"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// Repository defines operations for purchase order documents.
// Orders are immutable after commit, so there is no update.
type Repository interface {
	Create(ctx context.Context, doc *PurchaseOrder) error
	GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*PurchaseOrder, error)

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error)
	Count(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

// ListFilter for filtering purchase orders.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	SupplierID *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
}
