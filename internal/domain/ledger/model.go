// Package ledger provides the append-only cash ledger.
// Every committed order writes exactly one entry; manual entries cover
// everything outside the order flow (rent, salaries, adjustments).
package ledger

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

// Direction defines cash flow direction.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Category classifies the entry source.
type Category string

const (
	CategorySales    Category = "sales"
	CategoryPurchase Category = "purchase"
	CategoryOther    Category = "other"
)

// Entry is a single immutable cash ledger record.
// Entries are never updated or deleted.
type Entry struct {
	ID id.ID `db:"id" json:"id"`

	// Date is the business date of the entry
	Date time.Time `db:"date" json:"date"`

	Direction Direction `db:"direction" json:"direction"`
	Category  Category  `db:"category" json:"category"`

	// Amount is always positive; Direction carries the sign
	Amount types.Money `db:"amount" json:"amount"`

	Description string `db:"description" json:"description"`

	// RelatedOrderID references the order that produced this entry, if any
	RelatedOrderID *id.ID `db:"related_order_id" json:"relatedOrderId,omitempty"`

	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewEntry creates a ledger entry with generated ID and timestamps.
func NewEntry(date time.Time, direction Direction, category Category, amount types.Money, description string) *Entry {
	return &Entry{
		ID:          id.New(),
		Date:        date,
		Direction:   direction,
		Category:    category,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithOrder links the entry to the order that produced it.
func (e *Entry) WithOrder(orderID id.ID) *Entry {
	e.RelatedOrderID = &orderID
	return e
}

// Validate implements entity.Validatable interface.
func (e *Entry) Validate(ctx context.Context) error {
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if !isValidDirection(e.Direction) {
		return apperror.NewValidation("invalid direction").
			WithDetail("field", "direction").
			WithDetail("value", string(e.Direction))
	}

	if !isValidCategory(e.Category) {
		return apperror.NewValidation("invalid category").
			WithDetail("field", "category").
			WithDetail("value", string(e.Category))
	}

	if e.Amount.IsNegative() {
		return apperror.NewValidation("amount cannot be negative").
			WithDetail("field", "amount")
	}

	if e.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}

	return nil
}

// SignedAmount returns the amount with direction applied.
// Income = positive, expense = negative.
func (e *Entry) SignedAmount() types.Money {
	if e.Direction == DirectionExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}

func isValidDirection(d Direction) bool {
	switch d {
	case DirectionIncome, DirectionExpense:
		return true
	}
	return false
}

func isValidCategory(c Category) bool {
	switch c {
	case CategorySales, CategoryPurchase, CategoryOther:
		return true
	}
	return false
}
