package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/ledger"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// LedgerHandler handles cash ledger endpoints.
// Entries are append-only; there is no update or delete route.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /ledger
func (h *LedgerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := ledger.Filter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if dirStr := c.Query("direction"); dirStr != "" {
		direction := ledger.Direction(dirStr)
		filter.Direction = &direction
	}
	if catStr := c.Query("category"); catStr != "" {
		category := ledger.Category(catStr)
		filter.Category = &category
	}

	var ok bool
	if filter.From, ok = h.parseDateQuery(c, "from"); !ok {
		return
	}
	if filter.To, ok = h.parseDateQuery(c, "to"); !ok {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.LedgerEntryResponse, len(result.Items))
	for i, entry := range result.Items {
		items[i] = dto.FromLedgerEntry(entry)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Create handles POST /ledger - manual entry (rent, salary, adjustment).
func (h *LedgerHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateLedgerEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := req.ToEntity()
	if err := h.service.Append(ctx, entry); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromLedgerEntry(entry))
}
