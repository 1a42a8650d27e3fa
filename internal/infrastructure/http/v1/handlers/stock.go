package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// StockHandler handles stock register endpoints.
// The register is read-only over HTTP; only committed orders move stock.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /registers/stock
func (h *StockHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := stock.LevelFilter{
		ExcludeZero: c.Query("excludeZero") == "true",
		Limit:       h.ParseIntQuery(c, "limit", 50),
		Offset:      h.ParseIntQuery(c, "offset", 0),
	}

	if maxStr := c.Query("maxQuantity"); maxStr != "" {
		max := int64(h.ParseIntQuery(c, "maxQuantity", 0))
		filter.MaxQuantity = &max
	}

	for _, productStr := range c.QueryArray("productId") {
		productID, err := id.Parse(productStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductIDs = append(filter.ProductIDs, productID)
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockLevelResponse, len(result.Items))
	for i, level := range result.Items {
		items[i] = dto.FromStockLevel(level)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetQuantity handles GET /registers/stock/:productId
// Unknown products report zero quantity.
func (h *StockHandler) GetQuantity(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	quantity, err := h.service.GetQuantity(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProductQuantityResponse{
		ProductID: productID.String(),
		Quantity:  quantity,
	})
}
