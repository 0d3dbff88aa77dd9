package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/id"
	"gescom/internal/domain/ledger"
	"gescom/internal/infrastructure/http/v1/dto"
)

// StockHandler exposes the stock movement journal and consistency checks.
type StockHandler struct {
	*BaseHandler
	ledger *ledger.Service
}

// NewStockHandler creates a stock handler.
func NewStockHandler(base *BaseHandler, led *ledger.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, ledger: led}
}

// Movements handles GET /stock/movements - the audit journal.
func (h *StockHandler) Movements(c *gin.Context) {
	filter := ledger.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if productID := c.Query("productId"); productID != "" {
		if parsed, err := id.Parse(productID); err == nil {
			filter.ProductID = &parsed
		}
	}
	if sourceType := c.Query("sourceType"); sourceType != "" {
		st := ledger.SourceType(sourceType)
		filter.SourceType = &st
	}
	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.FromDate = &parsed
		}
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.ToDate = &parsed
		}
	}

	movements, err := h.ledger.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(movements))
}

// Verify handles GET /stock/verify/:id - checks that the product's
// denormalized counter equals the sum of its journal.
func (h *StockHandler) Verify(c *gin.Context) {
	productID, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.ledger.VerifyProduct(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "stock counter matches movement journal")
}

// RegisterRoutes registers stock routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/movements", h.Movements)
	rg.GET("/verify/:id", h.Verify)
}
