// Package sales_order provides the SalesOrder document.
// A sales order records outbound goods: committing it checks stock
// sufficiency under row locks, decreases stock, and appends one income
// entry to the cash ledger.
package sales_order

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents"
)

// OrderType distinguishes regular sales from livestream sales.
type OrderType string

const (
	TypeNormal     OrderType = "normal"
	TypeLivestream OrderType = "livestream"
)

// SalesOrder represents an outbound order. Immutable after commit.
type SalesOrder struct {
	entity.Document

	// CustomerID is optional: walk-in sales have no customer reference
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// CustomerName is snapshotted at commit time (empty for walk-in)
	CustomerName string `db:"customer_name" json:"customerName,omitempty"`

	// OrderType is the sales channel
	OrderType OrderType `db:"order_type" json:"orderType"`

	// Totals (calculated from lines)
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Payment tracking
	PaymentStatus documents.PaymentStatus `db:"payment_status" json:"paymentStatus"`
	PaidAmount    types.Money             `db:"paid_amount" json:"paidAmount"`

	// Table part: sold goods
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one product position in the order.
type Line struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Product reference with name snapshot
	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`

	// Quantity and pricing
	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Total     types.Money `db:"total" json:"total"`
}

// NewSalesOrder creates a new sales order document.
func NewSalesOrder() *SalesOrder {
	return &SalesOrder{
		Document:      entity.NewDocument(),
		OrderType:     TypeNormal,
		PaymentStatus: documents.PaymentUnpaid,
		TotalAmount:   types.Zero(),
		PaidAmount:    types.Zero(),
		Lines:         make([]Line, 0),
	}
}

// WithCustomer sets the optional customer reference.
func (o *SalesOrder) WithCustomer(customerID id.ID) *SalesOrder {
	o.CustomerID = &customerID
	return o
}

// AddLine adds a line to the order and recalculates totals.
func (o *SalesOrder) AddLine(productID id.ID, quantity int64, unitPrice types.Money) {
	line := Line{
		LineID:    id.New(),
		LineNo:    len(o.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     types.LineTotal(quantity, unitPrice),
	}

	o.Lines = append(o.Lines, line)
	o.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (o *SalesOrder) recalculateTotals() {
	o.TotalAmount = types.Zero()
	for _, line := range o.Lines {
		o.TotalAmount = o.TotalAmount.Add(line.Total)
	}
}

// Validate implements entity.Validatable.
func (o *SalesOrder) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if !isValidOrderType(o.OrderType) {
		return apperror.NewValidation("invalid order type").
			WithDetail("field", "orderType").
			WithDetail("value", string(o.OrderType))
	}

	if len(o.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range o.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return documents.ValidatePayment(o.PaymentStatus, o.PaidAmount, o.TotalAmount)
}

// GenerateMovements creates stock movements for this order.
// Sales issue goods, so all movements are expenses.
func (o *SalesOrder) GenerateMovements() []entity.StockMovement {
	movements := make([]entity.StockMovement, 0, len(o.Lines))
	for _, line := range o.Lines {
		movements = append(movements, entity.StockMovement{
			ProductID:  line.ProductID,
			RecordType: entity.RecordTypeExpense,
			Quantity:   line.Quantity,
		})
	}
	return movements
}

func isValidOrderType(t OrderType) bool {
	switch t {
	case TypeNormal, TypeLivestream:
		return true
	}
	return false
}
