package handlers

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents/credit_note"
	"gescom/internal/infrastructure/http/v1/dto"
)

// CreditNoteHandler handles HTTP requests for credit notes.
type CreditNoteHandler struct {
	*DocumentHandler[*credit_note.CreditNote]
	service *credit_note.Service
	binder  *DocumentBinder
}

// NewCreditNoteHandler creates a credit note handler.
func NewCreditNoteHandler(base *BaseHandler, service *credit_note.Service, binder *DocumentBinder) *CreditNoteHandler {
	return &CreditNoteHandler{
		DocumentHandler: NewDocumentHandler[*credit_note.CreditNote](base, service, service),
		service:         service,
		binder:          binder,
	}
}

// Create handles POST /documents/credit-notes for manually entered notes.
func (h *CreditNoteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCreditNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cp, err := h.binder.Counterparty(ctx, req.CounterpartyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := credit_note.NewCreditNote(cp.ID, cp.Name, req.Reason)
	if err := h.binder.Fill(ctx, &doc.Document, req.CreateDocumentRequest); err != nil {
		h.Error(c, err)
		return
	}
	if req.InvoiceID != "" {
		invoiceID, err := id.Parse(req.InvoiceID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid invoice id").
				WithDetail("invoiceId", req.InvoiceID))
			return
		}
		doc.InvoiceID = invoiceID
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// Update handles PUT /documents/credit-notes/:id.
func (h *CreditNoteHandler) Update(c *gin.Context) {
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

// GenerateFromInvoice handles POST /documents/credit-notes/from-invoice.
// The note copies the invoice's client and lines and starts pending; no
// stock returns until it is confirmed.
func (h *CreditNoteHandler) GenerateFromInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateFromInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	invoiceID, err := id.Parse(req.InvoiceID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid invoice id").
			WithDetail("invoiceId", req.InvoiceID))
		return
	}

	doc, err := h.service.GenerateFromInvoice(ctx, invoiceID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// RegisterRoutes registers credit note routes.
func (h *CreditNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterCommon(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.POST("/from-invoice", h.GenerateFromInvoice)
}
