package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/sales_order"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// SalesOrderHandler handles sales order endpoints.
// Orders are immutable after commit, so there is no update or delete.
type SalesOrderHandler struct {
	*BaseHandler
	service *sales_order.Service
}

// NewSalesOrderHandler creates a new sales order handler.
func NewSalesOrderHandler(base *BaseHandler, service *sales_order.Service) *SalesOrderHandler {
	return &SalesOrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /documents/sales-orders
func (h *SalesOrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := sales_order.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
			OrderBy: c.DefaultQuery("orderBy", "-date"),
		},
	}

	if customerStr := c.Query("customerId"); customerStr != "" {
		customerID, err := id.Parse(customerStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId format"))
			return
		}
		filter.CustomerID = &customerID
	}

	if typeStr := c.Query("orderType"); typeStr != "" {
		orderType := sales_order.OrderType(typeStr)
		filter.OrderType = &orderType
	}

	var ok bool
	if filter.DateFrom, ok = h.parseDateQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = h.parseDateQuery(c, "dateTo"); !ok {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromSalesOrder(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /documents/sales-orders/:id
func (h *SalesOrderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSalesOrder(doc))
}

// Create handles POST /documents/sales-orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSalesOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromSalesOrder(doc))
}
