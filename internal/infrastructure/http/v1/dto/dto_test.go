package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/reports"
)

func TestExportQuery_Parse(t *testing.T) {
	tests := []struct {
		name     string
		query    ExportQuery
		wantType reports.ExportType
		wantErr  bool
	}{
		{
			name:     "sales without range",
			query:    ExportQuery{Type: "sales"},
			wantType: reports.ExportSales,
		},
		{
			name:     "inventory",
			query:    ExportQuery{Type: "inventory"},
			wantType: reports.ExportInventory,
		},
		{
			name:     "purchases with range",
			query:    ExportQuery{Type: "purchases", From: "2026-08-01", To: "2026-08-31"},
			wantType: reports.ExportPurchases,
		},
		{
			name:    "unknown type",
			query:   ExportQuery{Type: "pdf"},
			wantErr: true,
		},
		{
			name:    "bad from date",
			query:   ExportQuery{Type: "sales", From: "01.08.2026"},
			wantErr: true,
		},
		{
			name:    "bad to date",
			query:   ExportQuery{Type: "sales", To: "yesterday"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exportType, _, err := tt.query.Parse()
			if tt.wantErr {
				require.Error(t, err)
				var appErr *apperror.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, exportType)
		})
	}
}

func TestExportQuery_ToBoundIsInclusive(t *testing.T) {
	q := ExportQuery{Type: "sales", From: "2026-08-01", To: "2026-08-31"}

	_, dateRange, err := q.Parse()
	require.NoError(t, err)
	require.NotNil(t, dateRange.From)
	require.NotNil(t, dateRange.To)

	// An order late on the To day still falls inside the range
	lastMoment := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	assert.False(t, dateRange.To.Before(lastMoment))
	assert.True(t, dateRange.To.Before(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCreateSalesOrderRequest_ToEntity(t *testing.T) {
	customerID := id.New().String()
	req := CreateSalesOrderRequest{
		CustomerID: &customerID,
		OrderType:  "livestream",
		Comment:    "evening stream",
		Lines: []OrderLineRequest{
			{ProductID: id.New().String(), Quantity: 2, UnitPrice: types.MustMoney("5.00")},
			{ProductID: id.New().String(), Quantity: 1, UnitPrice: types.MustMoney("12.50")},
		},
	}

	doc, err := req.ToEntity()
	require.NoError(t, err)

	require.NotNil(t, doc.CustomerID)
	assert.Equal(t, customerID, doc.CustomerID.String())
	assert.Equal(t, "livestream", string(doc.OrderType))
	assert.Len(t, doc.Lines, 2)
	assert.True(t, doc.TotalAmount.Equal(types.MustMoney("22.50")))
	assert.Equal(t, documents.PaymentUnpaid, doc.PaymentStatus)
}

func TestCreateSalesOrderRequest_WalkIn(t *testing.T) {
	req := CreateSalesOrderRequest{
		Lines: []OrderLineRequest{
			{ProductID: id.New().String(), Quantity: 1, UnitPrice: types.MustMoney("3.00")},
		},
	}

	doc, err := req.ToEntity()
	require.NoError(t, err)
	assert.Nil(t, doc.CustomerID)
	assert.Equal(t, "normal", string(doc.OrderType))
}

func TestCreateSalesOrderRequest_BadProductID(t *testing.T) {
	req := CreateSalesOrderRequest{
		Lines: []OrderLineRequest{
			{ProductID: id.New().String(), Quantity: 1, UnitPrice: types.MustMoney("3.00")},
			{ProductID: "not-a-uuid", Quantity: 1, UnitPrice: types.MustMoney("3.00")},
		},
	}

	_, err := req.ToEntity()
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, 2, appErr.Details["lineNo"])
}

func TestCreateSalesOrderRequest_PaymentBounds(t *testing.T) {
	base := func() CreateSalesOrderRequest {
		return CreateSalesOrderRequest{
			Lines: []OrderLineRequest{
				{ProductID: id.New().String(), Quantity: 4, UnitPrice: types.MustMoney("5.00")},
			},
		}
	}

	expectValidation := func(t *testing.T, err error, field string) {
		t.Helper()
		require.Error(t, err)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
		assert.Equal(t, field, appErr.Details["field"])
	}

	t.Run("negative paid amount rejected", func(t *testing.T) {
		req := base()
		req.PaymentStatus = "partial"
		paid := types.MustMoney("-5.00")
		req.PaidAmount = &paid
		_, err := req.ToEntity()
		expectValidation(t, err, "paidAmount")
	})

	t.Run("paid above total rejected", func(t *testing.T) {
		req := base()
		req.PaymentStatus = "partial"
		paid := types.MustMoney("999.00")
		req.PaidAmount = &paid
		_, err := req.ToEntity()
		expectValidation(t, err, "paidAmount")
	})

	t.Run("amount without status rejected", func(t *testing.T) {
		req := base()
		paid := types.MustMoney("10.00")
		req.PaidAmount = &paid
		_, err := req.ToEntity()
		expectValidation(t, err, "paymentStatus")
	})
}

func TestCreatePurchaseOrderRequest_PaymentDefaults(t *testing.T) {
	supplierID := id.New().String()

	base := func() CreatePurchaseOrderRequest {
		return CreatePurchaseOrderRequest{
			SupplierID: supplierID,
			Lines: []OrderLineRequest{
				{ProductID: id.New().String(), Quantity: 10, UnitPrice: types.MustMoney("4.00")},
			},
		}
	}

	t.Run("default unpaid", func(t *testing.T) {
		req := base()
		doc, err := req.ToEntity()
		require.NoError(t, err)
		assert.Equal(t, documents.PaymentUnpaid, doc.PaymentStatus)
		assert.True(t, doc.PaidAmount.IsZero())
	})

	t.Run("paid defaults amount to total", func(t *testing.T) {
		req := base()
		req.PaymentStatus = "paid"
		doc, err := req.ToEntity()
		require.NoError(t, err)
		assert.Equal(t, documents.PaymentPaid, doc.PaymentStatus)
		assert.True(t, doc.PaidAmount.Equal(types.MustMoney("40.00")))
	})

	t.Run("partial with explicit amount", func(t *testing.T) {
		req := base()
		req.PaymentStatus = "partial"
		paid := types.MustMoney("15.00")
		req.PaidAmount = &paid
		doc, err := req.ToEntity()
		require.NoError(t, err)
		assert.Equal(t, documents.PaymentPartial, doc.PaymentStatus)
		assert.True(t, doc.PaidAmount.Equal(paid))
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		req := base()
		req.PaymentStatus = "refunded"
		_, err := req.ToEntity()
		require.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})
}

func TestCreatePurchaseOrderRequest_BadSupplierID(t *testing.T) {
	req := CreatePurchaseOrderRequest{
		SupplierID: "garbage",
		Lines: []OrderLineRequest{
			{ProductID: id.New().String(), Quantity: 1, UnitPrice: types.MustMoney("1.00")},
		},
	}

	_, err := req.ToEntity()
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
