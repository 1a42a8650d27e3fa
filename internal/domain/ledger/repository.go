package ledger

import (
	"context"
	"time"

	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

// Repository defines the persistence contract for ledger entries.
// Insert-only: there is deliberately no update or delete.
type Repository interface {
	// Insert appends a new entry.
	Insert(ctx context.Context, entry *Entry) error

	// List returns entries ordered by date, then created_at.
	List(ctx context.Context, filter Filter) (domain.ListResult[*Entry], error)

	// SumByDirection totals amounts per direction within the range.
	SumByDirection(ctx context.Context, direction Direction, filter Filter) (types.Money, error)
}

// Filter narrows ledger queries.
type Filter struct {
	From      *time.Time
	To        *time.Time
	Direction *Direction
	Category  *Category
	Limit     int
	Offset    int
}
