package dto

import (
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents/sales_order"
)

// --- Request DTOs ---

// CreateSalesOrderRequest is the request body for committing a sales order.
// CustomerID is optional: walk-in sales carry no customer reference.
type CreateSalesOrderRequest struct {
	CustomerID    *string            `json:"customerId"`
	OrderType     string             `json:"orderType"`
	Date          *time.Time         `json:"date"`
	Comment       string             `json:"comment"`
	PaymentStatus string             `json:"paymentStatus"`
	PaidAmount    *types.Money       `json:"paidAmount"`
	Lines         []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSalesOrderRequest) ToEntity() (*sales_order.SalesOrder, error) {
	doc := sales_order.NewSalesOrder()

	if r.CustomerID != nil && *r.CustomerID != "" {
		customerID, err := id.Parse(*r.CustomerID)
		if err != nil {
			return nil, apperror.NewValidation("invalid customer id").
				WithDetail("field", "customerId")
		}
		doc.WithCustomer(customerID)
	}

	if r.OrderType != "" {
		doc.OrderType = sales_order.OrderType(r.OrderType)
	}
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

// --- Response DTOs ---

// SalesOrderResponse is the response body for a sales order.
type SalesOrderResponse struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	Date          time.Time           `json:"date"`
	CustomerID    *string             `json:"customerId,omitempty"`
	CustomerName  string              `json:"customerName,omitempty"`
	OrderType     string              `json:"orderType"`
	TotalAmount   types.Money         `json:"totalAmount"`
	PaymentStatus string              `json:"paymentStatus"`
	PaidAmount    types.Money         `json:"paidAmount"`
	Comment       string              `json:"comment,omitempty"`
	Lines         []OrderLineResponse `json:"lines"`
	CreatedBy     string              `json:"createdBy,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// FromSalesOrder creates response DTO from domain entity.
func FromSalesOrder(doc *sales_order.SalesOrder) *SalesOrderResponse {
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

	var customerID *string
	if doc.CustomerID != nil {
		s := doc.CustomerID.String()
		customerID = &s
	}

	return &SalesOrderResponse{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		Date:          doc.Date,
		CustomerID:    customerID,
		CustomerName:  doc.CustomerName,
		OrderType:     string(doc.OrderType),
		TotalAmount:   doc.TotalAmount,
		PaymentStatus: string(doc.PaymentStatus),
		PaidAmount:    doc.PaidAmount,
		Comment:       doc.Comment,
		Lines:         lines,
		CreatedBy:     doc.CreatedBy,
		CreatedAt:     doc.CreatedAt,
	}
}
