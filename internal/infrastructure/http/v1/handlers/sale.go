package handlers

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles HTTP requests for sale invoices.
type SaleHandler struct {
	*DocumentHandler[*sale.Sale]
	service *sale.Service
	binder  *DocumentBinder
}

// NewSaleHandler creates a sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service, binder *DocumentBinder) *SaleHandler {
	return &SaleHandler{
		DocumentHandler: NewDocumentHandler[*sale.Sale](base, service, service),
		service:         service,
		binder:          binder,
	}
}

// Create handles POST /documents/sales. The availability check and the
// stock exit happen inside the service transaction.
func (h *SaleHandler) Create(c *gin.Context) {
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

	doc := sale.NewSale(cp.ID, cp.Name)
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

// Update handles PUT /documents/sales/:id.
func (h *SaleHandler) Update(c *gin.Context) {
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

// RegisterRoutes registers sale routes.
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterCommon(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
