package dto

import (
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/purchase_order"
)

// --- Request DTOs ---

// OrderLineRequest is one product position in an order request.
type OrderLineRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  int64       `json:"quantity" binding:"required,gt=0"`
	UnitPrice types.Money `json:"unitPrice"`
}

// CreatePurchaseOrderRequest is the request body for committing a purchase order.
type CreatePurchaseOrderRequest struct {
	SupplierID    string             `json:"supplierId" binding:"required"`
	Date          *time.Time         `json:"date"`
	Comment       string             `json:"comment"`
	PaymentStatus string             `json:"paymentStatus"`
	PaidAmount    *types.Money       `json:"paidAmount"`
	Lines         []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePurchaseOrderRequest) ToEntity() (*purchase_order.PurchaseOrder, error) {
	supplierID, err := id.Parse(r.SupplierID)
	if err != nil {
		return nil, apperror.NewValidation("invalid supplier id").
			WithDetail("field", "supplierId")
	}

	doc := purchase_order.NewPurchaseOrder(supplierID)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Comment = r.Comment

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid product id").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		doc.AddLine(productID, line.Quantity, line.UnitPrice)
	}

	if err := applyPayment(r.PaymentStatus, r.PaidAmount, &doc.PaymentStatus, &doc.PaidAmount, doc.TotalAmount); err != nil {
		return nil, err
	}

	return doc, nil
}

// applyPayment sets the informational payment tracking fields from the
// request. The status defaults to unpaid; paid orders default the paid
// amount to the order total. The paid amount must stay within
// [0, total] and agree with the status.
func applyPayment(status string, paid *types.Money, docStatus *documents.PaymentStatus, docPaid *types.Money, total types.Money) error {
	if status == "" {
		if paid != nil && !paid.IsZero() {
			return apperror.NewValidation("paymentStatus is required when paidAmount is set").
				WithDetail("field", "paymentStatus")
		}
		return nil
	}

	s := documents.PaymentStatus(status)

	*docStatus = s
	switch {
	case paid != nil:
		*docPaid = *paid
	case s == documents.PaymentPaid:
		*docPaid = total
	}

	return documents.ValidatePayment(s, *docPaid, total)
}

// --- Response DTOs ---

// OrderLineResponse is one product position in an order response.
type OrderLineResponse struct {
	LineID      string      `json:"lineId"`
	LineNo      int         `json:"lineNo"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int64       `json:"quantity"`
	UnitPrice   types.Money `json:"unitPrice"`
	Total       types.Money `json:"total"`
}

// PurchaseOrderResponse is the response body for a purchase order.
type PurchaseOrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	Date          time.Time           `json:"date"`
	SupplierID    string              `json:"supplierId"`
	SupplierName  string              `json:"supplierName"`
	TotalAmount   types.Money         `json:"totalAmount"`
	PaymentStatus string              `json:"paymentStatus"`
	PaidAmount    types.Money         `json:"paidAmount"`
	Comment       string              `json:"comment,omitempty"`
	Lines         []OrderLineResponse `json:"lines"`
	CreatedBy     string              `json:"createdBy,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// FromPurchaseOrder creates response DTO from domain entity.
func FromPurchaseOrder(doc *purchase_order.PurchaseOrder) *PurchaseOrderResponse {
	lines := make([]OrderLineResponse, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, OrderLineResponse{
			LineID:      l.LineID.String(),
			LineNo:      l.LineNo,
			ProductID:   l.ProductID.String(),
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total,
		})
	}

	return &PurchaseOrderResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		SupplierID:    doc.SupplierID.String(),
		SupplierName:  doc.SupplierName,
		TotalAmount:   doc.TotalAmount,
		PaymentStatus: string(doc.PaymentStatus),
		PaidAmount:    doc.PaidAmount,
		Comment:       doc.Comment,
		Lines:         lines,
		CreatedBy:     doc.CreatedBy,
		CreatedAt:     doc.CreatedAt,
	}
}
