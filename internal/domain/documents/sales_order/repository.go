// Package sales_order provides the SalesOrder document repository.
package sales_order

import (
	"context"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// Repository defines operations for sales order documents.
// Orders are immutable after commit, so there is no update.
type Repository interface {
	Create(ctx context.Context, doc *SalesOrder) error
	GetByID(ctx context.Context, docID id.ID) (*SalesOrder, error)
	GetByNumber(ctx context.Context, number string) (*SalesOrder, error)

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesOrder], error)
	Count(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

// ListFilter for filtering sales orders.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	CustomerID *id.ID
	OrderType  *OrderType
	DateFrom   *time.Time
	DateTo     *time.Time
}
