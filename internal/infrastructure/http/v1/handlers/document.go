package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/domain/catalogs/counterparty"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/documents"
	"gescom/internal/infrastructure/http/v1/dto"
)

// DocumentService is the surface shared by all document family services.
type DocumentService[T any] interface {
	Create(ctx context.Context, doc T) error
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
	GetByID(ctx context.Context, docID id.ID) (T, error)
	List(ctx context.Context, filter documents.ListFilter) ([]T, error)
}

// StatusService is implemented by families that expose a lifecycle endpoint.
type StatusService interface {
	UpdateStatus(ctx context.Context, docID id.ID, to entity.Status) error
}

// DocumentHandler provides the CRUD plumbing shared by all families.
// Create and Update stay family-specific: each binds its own request type.
type DocumentHandler[T any] struct {
	*BaseHandler
	service  DocumentService[T]
	statuses StatusService
}

// NewDocumentHandler creates the shared handler core. statuses may be nil
// for families without a lifecycle endpoint (reception notes, delivery
// receipts).
func NewDocumentHandler[T any](base *BaseHandler, service DocumentService[T], statuses StatusService) *DocumentHandler[T] {
	return &DocumentHandler[T]{BaseHandler: base, service: service, statuses: statuses}
}

// Get handles GET /:id.
func (h *DocumentHandler[T]) Get(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// List handles GET "" with filtering.
func (h *DocumentHandler[T]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), h.listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// Delete handles DELETE /:id. The service reverses any posted stock effect
// before removing the document.
func (h *DocumentHandler[T]) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateStatus handles PUT /:id/status.
func (h *DocumentHandler[T]) UpdateStatus(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.statuses.UpdateStatus(c.Request.Context(), docID, entity.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "status updated")
}

// RegisterCommon registers the routes every family shares. Family handlers
// register their own POST/PUT on top.
func (h *DocumentHandler[T]) RegisterCommon(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	if h.statuses != nil {
		rg.PUT("/:id/status", h.UpdateStatus)
	}
}

// listFilter builds the common document list filter from query parameters.
func (h *DocumentHandler[T]) listFilter(c *gin.Context) documents.ListFilter {
	filter := documents.ListFilter{
		Search: c.Query("search"),
		Status: entity.Status(c.Query("status")),
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if cpID := c.Query("counterpartyId"); cpID != "" {
		if parsed, err := id.Parse(cpID); err == nil {
			filter.CounterpartyID = parsed
		}
	}
	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = parsed
		}
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = parsed
		}
	}
	return filter
}

// --- Request binding ---

// DocumentBinder resolves catalog snapshots for incoming document payloads.
// Counterparty and product names are read from the catalog at write time,
// never trusted from the client.
type DocumentBinder struct {
	counterparties *counterparty.Service
	products       *product.Service
}

// NewDocumentBinder creates a binder over the two catalogs.
func NewDocumentBinder(counterparties *counterparty.Service, products *product.Service) *DocumentBinder {
	return &DocumentBinder{counterparties: counterparties, products: products}
}

// Counterparty resolves the counterparty referenced by a create request.
func (b *DocumentBinder) Counterparty(ctx context.Context, raw string) (*counterparty.Counterparty, error) {
	cpID, err := id.Parse(raw)
	if err != nil {
		return nil, apperror.NewValidation("invalid counterparty id").
			WithDetail("counterpartyId", raw)
	}
	return b.counterparties.GetByID(ctx, cpID)
}

// Fill sets date, comment and lines on a freshly constructed document.
func (b *DocumentBinder) Fill(ctx context.Context, doc *entity.Document, req dto.CreateDocumentRequest) error {
	doc.Comment = req.Comment
	if req.Date != nil {
		doc.Date = req.Date.UTC()
	}

	lines, err := b.Lines(ctx, req.Lines)
	if err != nil {
		return err
	}
	doc.ReplaceLines(lines)
	return nil
}

// Lines resolves request lines into document lines with product snapshots.
func (b *DocumentBinder) Lines(ctx context.Context, reqLines []dto.DocumentLineRequest) ([]entity.DocumentLine, error) {
	lines := make([]entity.DocumentLine, 0, len(reqLines))
	for _, l := range reqLines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid product id").
				WithDetail("productId", l.ProductID)
		}
		p, err := b.products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.DocumentLine{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			DiscountPct: l.DiscountPct,
		})
	}
	return lines, nil
}

// ApplyUpdate applies an edit request to a loaded document. Only date,
// comment and lines are editable; nil fields are left untouched.
func (b *DocumentBinder) ApplyUpdate(ctx context.Context, doc *entity.Document, req dto.UpdateDocumentRequest) error {
	if req.Date != nil {
		doc.Date = req.Date.UTC()
	}
	if req.Comment != nil {
		doc.Comment = *req.Comment
	}
	if req.Lines != nil {
		lines, err := b.Lines(ctx, req.Lines)
		if err != nil {
			return err
		}
		doc.ReplaceLines(lines)
	}
	return nil
}
