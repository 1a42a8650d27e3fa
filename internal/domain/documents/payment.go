// Package documents holds types shared by order document packages.
package documents

import (
	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

// PaymentStatus tracks how much of an order has been paid.
// Orders are always created unpaid; the status is informational and
// does not affect stock or ledger postings.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// IsValidPaymentStatus reports whether s is a known payment status.
func IsValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid:
		return true
	}
	return false
}

// ValidatePayment checks the payment tracking fields against the order
// total: the paid amount stays within [0, total] and agrees with the
// status at its endpoints.
func ValidatePayment(status PaymentStatus, paid, total types.Money) error {
	if !IsValidPaymentStatus(status) {
		return apperror.NewValidation("invalid payment status").
			WithDetail("field", "paymentStatus").
			WithDetail("value", string(status))
	}

	if paid.IsNegative() {
		return apperror.NewValidation("paid amount cannot be negative").
			WithDetail("field", "paidAmount")
	}
	if paid.GreaterThan(total) {
		return apperror.NewValidation("paid amount cannot exceed order total").
			WithDetail("field", "paidAmount").
			WithDetail("total", total.String())
	}

	if status == PaymentUnpaid && !paid.IsZero() {
		return apperror.NewValidation("unpaid order cannot carry a paid amount").
			WithDetail("field", "paidAmount")
	}
	if status == PaymentPaid && !paid.Equal(total) {
		return apperror.NewValidation("paid order must be paid in full").
			WithDetail("field", "paidAmount").
			WithDetail("total", total.String())
	}

	return nil
}
