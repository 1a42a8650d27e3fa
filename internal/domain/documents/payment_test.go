package documents

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

func TestValidatePayment(t *testing.T) {
	total := types.MustMoney("20.00")

	valid := []struct {
		name   string
		status PaymentStatus
		paid   types.Money
	}{
		{"unpaid with zero", PaymentUnpaid, types.Zero()},
		{"partial within total", PaymentPartial, types.MustMoney("5.00")},
		{"partial at zero", PaymentPartial, types.Zero()},
		{"paid in full", PaymentPaid, total},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, ValidatePayment(tc.status, tc.paid, total))
		})
	}

	invalid := []struct {
		name   string
		status PaymentStatus
		paid   types.Money
		field  string
	}{
		{"unknown status", PaymentStatus("refunded"), types.Zero(), "paymentStatus"},
		{"negative paid", PaymentPartial, types.MustMoney("-5.00"), "paidAmount"},
		{"paid above total", PaymentPartial, types.MustMoney("999.00"), "paidAmount"},
		{"unpaid with amount", PaymentUnpaid, types.MustMoney("1.00"), "paidAmount"},
		{"paid below total", PaymentPaid, types.MustMoney("19.99"), "paidAmount"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePayment(tc.status, tc.paid, total)
			require.Error(t, err)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tc.field, appErr.Details["field"])
		})
	}
}
