package handlers

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/domain/documents/supplier_order"
	"gescom/internal/infrastructure/http/v1/dto"
)

// SupplierOrderHandler handles HTTP requests for supplier orders.
type SupplierOrderHandler struct {
	*DocumentHandler[*supplier_order.SupplierOrder]
	service *supplier_order.Service
	binder  *DocumentBinder
}

// NewSupplierOrderHandler creates a supplier order handler.
func NewSupplierOrderHandler(base *BaseHandler, service *supplier_order.Service, binder *DocumentBinder) *SupplierOrderHandler {
	return &SupplierOrderHandler{
		DocumentHandler: NewDocumentHandler[*supplier_order.SupplierOrder](base, service, service),
		service:         service,
		binder:          binder,
	}
}

// Create handles POST /documents/supplier-orders. An order may be created
// directly in delivered status, in which case the stock entry is posted in
// the same transaction.
func (h *SupplierOrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cp, err := h.binder.Counterparty(ctx, req.CounterpartyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := supplier_order.NewSupplierOrder(cp.ID, cp.Name)
	if err := h.binder.Fill(ctx, &doc.Document, req); err != nil {
		h.Error(c, err)
		return
	}
	if req.Status != "" {
		if !entity.IsKnownStatus(entity.Status(req.Status)) {
			h.Error(c, apperror.NewValidation("unknown status").WithDetail("status", req.Status))
			return
		}
		doc.Status = entity.Status(req.Status)
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// Update handles PUT /documents/supplier-orders/:id. Status is deliberately
// not editable here; it moves through PUT /:id/status only.
func (h *SupplierOrderHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.binder.ApplyUpdate(ctx, &doc.Document, req); err != nil {
		h.Error(c, err)
		return
	}
	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// RegisterRoutes registers supplier order routes.
func (h *SupplierOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterCommon(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
