package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stockbook/internal/domain/reports"
)

func TestRender_RoundTrip(t *testing.T) {
	table := &reports.Table{
		Title:   "Sales Orders",
		Headers: []string{"Order ID", "Date", "Customer", "Type", "Total Amount", "Payment Status"},
		Rows: [][]any{
			{"SO-2026-00001", "2026-08-15", "Downtown Office Center", "normal", 99.5, "paid"},
			{"SO-2026-00002", "2026-08-16", "-", "livestream", 15.0, "unpaid"},
		},
	}

	data, err := NewExcelRenderer().Render(table)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), "Sales Orders")

	rows, err := f.GetRows("Sales Orders")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, table.Headers, rows[0])
	assert.Equal(t, "SO-2026-00001", rows[1][0])
	assert.Equal(t, "Downtown Office Center", rows[1][2])
	assert.Equal(t, "-", rows[2][2])
}

func TestRender_EmptyTableKeepsHeaders(t *testing.T) {
	table := &reports.Table{
		Title:   "Inventory",
		Headers: []string{"Product ID", "SKU", "Product Name", "Quantity", "Last Updated"},
	}

	data, err := NewExcelRenderer().Render(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, table.Headers, rows[0])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "sales_export.xlsx", Filename(reports.ExportSales))
	assert.Equal(t, "inventory_export.xlsx", Filename(reports.ExportInventory))
}
