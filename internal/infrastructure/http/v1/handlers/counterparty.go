package handlers

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/domain/catalogs/counterparty"
	"gescom/internal/infrastructure/http/v1/dto"
)

// CounterpartyHandler handles HTTP requests for the counterparty catalog.
type CounterpartyHandler struct {
	*BaseHandler
	service *counterparty.Service
}

// NewCounterpartyHandler creates a counterparty handler.
func NewCounterpartyHandler(base *BaseHandler, service *counterparty.Service) *CounterpartyHandler {
	return &CounterpartyHandler{BaseHandler: base, service: service}
}

// Create handles POST /catalog/counterparties.
func (h *CounterpartyHandler) Create(c *gin.Context) {
	var req dto.CreateCounterpartyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cp := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), cp); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cp)
}

// Get handles GET /catalog/counterparties/:id.
func (h *CounterpartyHandler) Get(c *gin.Context) {
	cpID, ok := h.ParseID(c)
	if !ok {
		return
	}
	cp, err := h.service.GetByID(c.Request.Context(), cpID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cp)
}

// Update handles PUT /catalog/counterparties/:id.
func (h *CounterpartyHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	cpID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateCounterpartyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cp, err := h.service.GetByID(ctx, cpID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(cp)

	if err := h.service.Update(ctx, cp); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cp)
}

// Delete handles DELETE /catalog/counterparties/:id. Rejected while any
// non-cancelled document still references the record.
func (h *CounterpartyHandler) Delete(c *gin.Context) {
	cpID, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), cpID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /catalog/counterparties.
func (h *CounterpartyHandler) List(c *gin.Context) {
	filter := counterparty.ListFilter{
		Search: c.Query("search"),
		Kind:   counterparty.Kind(c.Query("kind")),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// RegisterRoutes registers counterparty routes.
func (h *CounterpartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
