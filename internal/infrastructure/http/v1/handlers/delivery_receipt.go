package handlers

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents/delivery_receipt"
	"gescom/internal/infrastructure/http/v1/dto"
)

// DeliveryReceiptHandler handles HTTP requests for delivery receipts.
// Receipts are stock-neutral paperwork: the sale already moved the goods.
type DeliveryReceiptHandler struct {
	*DocumentHandler[*delivery_receipt.DeliveryReceipt]
	service *delivery_receipt.Service
	binder  *DocumentBinder
}

// NewDeliveryReceiptHandler creates a delivery receipt handler.
func NewDeliveryReceiptHandler(base *BaseHandler, service *delivery_receipt.Service, binder *DocumentBinder) *DeliveryReceiptHandler {
	return &DeliveryReceiptHandler{
		DocumentHandler: NewDocumentHandler[*delivery_receipt.DeliveryReceipt](base, service, nil),
		service:         service,
		binder:          binder,
	}
}

// Create handles POST /documents/delivery-receipts.
func (h *DeliveryReceiptHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDeliveryReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cp, err := h.binder.Counterparty(ctx, req.CounterpartyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := delivery_receipt.NewDeliveryReceipt(cp.ID, cp.Name)
	if err := h.binder.Fill(ctx, &doc.Document, req.CreateDocumentRequest); err != nil {
		h.Error(c, err)
		return
	}
	if req.SaleID != "" {
		saleID, err := id.Parse(req.SaleID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid sale id").
				WithDetail("saleId", req.SaleID))
			return
		}
		doc.SaleID = saleID
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// Update handles PUT /documents/delivery-receipts/:id.
func (h *DeliveryReceiptHandler) Update(c *gin.Context) {
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

// GenerateFromSale handles POST /documents/delivery-receipts/from-sale.
func (h *DeliveryReceiptHandler) GenerateFromSale(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateFromSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	saleID, err := id.Parse(req.SaleID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid sale id").
			WithDetail("saleId", req.SaleID))
		return
	}

	doc, err := h.service.GenerateFromSale(ctx, saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// RegisterRoutes registers delivery receipt routes.
func (h *DeliveryReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterCommon(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.POST("/from-sale", h.GenerateFromSale)
}
