package dto

import (
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/reports"
)

// --- Request DTOs ---

// ExportQuery selects the data set and date window for a spreadsheet export.
type ExportQuery struct {
	Type string `form:"type" binding:"required"`
	From string `form:"from"`
	To   string `form:"to"`
}

// Parse validates the query into domain types. Dates use YYYY-MM-DD;
// the To bound is inclusive of the whole day.
func (q *ExportQuery) Parse() (reports.ExportType, reports.DateRange, error) {
	exportType := reports.ExportType(q.Type)
	if !reports.IsValidExportType(exportType) {
		return "", reports.DateRange{}, apperror.NewValidation("invalid export type").
			WithDetail("field", "type").
			WithDetail("value", q.Type)
	}

	var dateRange reports.DateRange
	if q.From != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return "", reports.DateRange{}, apperror.NewValidation("invalid from date, expected YYYY-MM-DD").
				WithDetail("field", "from")
		}
		dateRange.From = &from
	}
	if q.To != "" {
		to, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return "", reports.DateRange{}, apperror.NewValidation("invalid to date, expected YYYY-MM-DD").
				WithDetail("field", "to")
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		dateRange.To = &end
	}

	return exportType, dateRange, nil
}
