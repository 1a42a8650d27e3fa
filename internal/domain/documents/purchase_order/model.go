// Package purchase_order provides the PurchaseOrder document.
// A purchase order records inbound goods from a supplier: committing it
// increases stock and appends one expense entry to the cash ledger.
package purchase_order

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents"
)

// PurchaseOrder represents an inbound order. Immutable after commit.
type PurchaseOrder struct {
	entity.Document

	// Supplier reference
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// SupplierName is snapshotted at commit time so the order survives
	// later catalog renames
	SupplierName string `db:"supplier_name" json:"supplierName"`

	// Totals (calculated from lines)
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Payment tracking
	PaymentStatus documents.PaymentStatus `db:"payment_status" json:"paymentStatus"`
	PaidAmount    types.Money             `db:"paid_amount" json:"paidAmount"`

	// Table part: ordered goods
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

// NewPurchaseOrder creates a new purchase order document.
func NewPurchaseOrder(supplierID id.ID) *PurchaseOrder {
	return &PurchaseOrder{
		Document:      entity.NewDocument(),
		SupplierID:    supplierID,
		PaymentStatus: documents.PaymentUnpaid,
		TotalAmount:   types.Zero(),
		PaidAmount:    types.Zero(),
		Lines:         make([]Line, 0),
	}
}

// AddLine adds a line to the order and recalculates totals.
func (o *PurchaseOrder) AddLine(productID id.ID, quantity int64, unitPrice types.Money) {
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
func (o *PurchaseOrder) recalculateTotals() {
	o.TotalAmount = types.Zero()
	for _, line := range o.Lines {
		o.TotalAmount = o.TotalAmount.Add(line.Total)
	}
}

// Validate implements entity.Validatable.
func (o *PurchaseOrder) Validate(ctx context.Context) error {
	if err := o.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
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
// Purchases receive goods, so all movements are receipts.
func (o *PurchaseOrder) GenerateMovements() []entity.StockMovement {
	movements := make([]entity.StockMovement, 0, len(o.Lines))
	for _, line := range o.Lines {
		movements = append(movements, entity.StockMovement{
			ProductID:  line.ProductID,
			RecordType: entity.RecordTypeReceipt,
			Quantity:   line.Quantity,
		})
	}
	return movements
}
