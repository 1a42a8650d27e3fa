// Package customer provides the Customer catalog.
// Customers are the optional counterparties of sales orders.
package customer

import (
	"context"
	"regexp"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer represents a buyer.
type Customer struct {
	entity.Catalog

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// Address is the delivery address
	Address *string `db:"address" json:"address,omitempty"`

	// Group is a free-form segment label (e.g. "wholesale", "vip")
	Group *string `db:"customer_group" json:"group,omitempty"`

	// Notes is a free-form note
	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}
