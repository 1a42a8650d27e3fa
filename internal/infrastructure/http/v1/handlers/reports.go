package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/export"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles dashboard and export endpoints.
type ReportsHandler struct {
	*BaseHandler
	service  *reports.Service
	renderer *export.ExcelRenderer
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service, renderer *export.ExcelRenderer) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
		renderer:    renderer,
	}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.service.GetDashboardStats(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Export handles GET /reports/export - xlsx download.
func (h *ReportsHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ExportQuery
	if !h.BindQuery(c, &query) {
		return
	}

	exportType, dateRange, err := query.Parse()
	if err != nil {
		h.Error(c, err)
		return
	}

	table, err := h.service.BuildExport(ctx, exportType, dateRange)
	if err != nil {
		h.Error(c, err)
		return
	}

	data, err := h.renderer.Render(table)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(exportType)))
	c.Data(http.StatusOK, export.ContentType, data)
}
