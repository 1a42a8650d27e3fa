// Package export renders report tables to spreadsheet files.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"stockbook/internal/domain/reports"
)

const (
	headerFillColor = "24A853"
	minColumnWidth  = 12.0
	maxColumnWidth  = 40.0
)

// ExcelRenderer renders reports.Table values to xlsx.
type ExcelRenderer struct{}

// NewExcelRenderer creates a new renderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// Render produces an xlsx file with one sheet containing the table.
func (r *ExcelRenderer) Render(table *reports.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Title
	if sheet == "" {
		sheet = "Sheet1"
	}

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet when we named our own
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// Headers
	for col, h := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
	}

	// Data rows
	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set cell: %w", err)
			}
		}
	}

	r.autoSizeColumns(f, sheet, table)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// autoSizeColumns widens each column to fit its longest value.
func (r *ExcelRenderer) autoSizeColumns(f *excelize.File, sheet string, table *reports.Table) {
	for col, h := range table.Headers {
		width := float64(len(h)) + 2
		for _, row := range table.Rows {
			if col >= len(row) {
				continue
			}
			if w := float64(len(fmt.Sprint(row[col]))) + 2; w > width {
				width = w
			}
		}
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, name, name, width)
	}
}

// ContentType is the MIME type for xlsx downloads.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename builds the download file name for an export type.
func Filename(exportType reports.ExportType) string {
	return fmt.Sprintf("%s_export.xlsx", exportType)
}
