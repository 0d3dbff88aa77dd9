package handlers

import (
	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents/reception_note"
	"gescom/internal/infrastructure/http/v1/dto"
)

// ReceptionNoteHandler handles HTTP requests for reception notes.
// Reception notes have no lifecycle endpoint: they are delivered from the
// moment they exist and their stock entry posts at creation.
type ReceptionNoteHandler struct {
	*DocumentHandler[*reception_note.ReceptionNote]
	service *reception_note.Service
	binder  *DocumentBinder
}

// NewReceptionNoteHandler creates a reception note handler.
func NewReceptionNoteHandler(base *BaseHandler, service *reception_note.Service, binder *DocumentBinder) *ReceptionNoteHandler {
	return &ReceptionNoteHandler{
		DocumentHandler: NewDocumentHandler[*reception_note.ReceptionNote](base, service, nil),
		service:         service,
		binder:          binder,
	}
}

// Create handles POST /documents/reception-notes.
func (h *ReceptionNoteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateReceptionNoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cp, err := h.binder.Counterparty(ctx, req.CounterpartyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := reception_note.NewReceptionNote(cp.ID, cp.Name)
	if err := h.binder.Fill(ctx, &doc.Document, req.CreateDocumentRequest); err != nil {
		h.Error(c, err)
		return
	}
	if req.SupplierOrderID != "" {
		orderID, err := id.Parse(req.SupplierOrderID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplier order id").
				WithDetail("supplierOrderId", req.SupplierOrderID))
			return
		}
		doc.SupplierOrderID = orderID
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, doc)
}

// Update handles PUT /documents/reception-notes/:id. The stock effect is
// reconciled against the new quantities inside the service transaction.
func (h *ReceptionNoteHandler) Update(c *gin.Context) {
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

// RegisterRoutes registers reception note routes.
func (h *ReceptionNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.RegisterCommon(rg)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
