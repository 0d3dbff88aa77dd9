package handlers

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/domain/documents/purchase_order"
	"gescom/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler handles HTTP requests for purchase orders.
type PurchaseOrderHandler struct {
	*DocumentHandler[*purchase_order.PurchaseOrder]
	service *purchase_order.Service
	binder  *DocumentBinder
}

// NewPurchaseOrderHandler creates a purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchase_order.Service, binder *DocumentBinder) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		DocumentHandler: NewDocumentHandler[*purchase_order.PurchaseOrder](base, service, service),
		service:         service,
		binder:          binder,
	}
}

// Create handles POST /documents/purchase-orders.
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
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

	doc := purchase_order.NewPurchaseOrder(cp.ID, cp.Name)
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

// Update handles PUT /documents/purchase-orders/:id.
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
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

// RegisterRoutes registers purchase order routes.
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterCommon(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
