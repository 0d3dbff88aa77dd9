package dto

import (
	"time"

	"gescom/internal/core/types"
)

// --- Shared document requests ---

// DocumentLineRequest is one item row in a create/update request.
// Product names are never accepted from the client; the handler snapshots
// them from the catalog at write time.
type DocumentLineRequest struct {
	ProductID   string      `json:"productId" binding:"required"`
	Quantity    int64       `json:"quantity" binding:"required,gt=0"`
	UnitPrice   types.Money `json:"unitPrice"`
	DiscountPct types.Money `json:"discountPct"`
}

// CreateDocumentRequest carries the fields common to all document families.
type CreateDocumentRequest struct {
	Date           *time.Time            `json:"date,omitempty"`
	CounterpartyID string                `json:"counterpartyId" binding:"required"`
	Status         string                `json:"status,omitempty"`
	Comment        string                `json:"comment,omitempty"`
	Lines          []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest carries the editable fields of a document.
// The number, counterparty and status are never changed through an edit;
// status moves only through the dedicated status endpoint.
type UpdateDocumentRequest struct {
	Date    *time.Time            `json:"date,omitempty"`
	Comment *string               `json:"comment,omitempty"`
	Lines   []DocumentLineRequest `json:"lines,omitempty"`
}

// StatusRequest asks for a lifecycle transition.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- Family-specific requests ---

// CreateReceptionNoteRequest optionally links the note to a supplier order.
type CreateReceptionNoteRequest struct {
	CreateDocumentRequest
	SupplierOrderID string `json:"supplierOrderId,omitempty"`
}

// CreateCreditNoteRequest requires a reason; the invoice link is optional
// for manually entered credit notes.
type CreateCreditNoteRequest struct {
	CreateDocumentRequest
	InvoiceID string `json:"invoiceId,omitempty"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateDeliveryReceiptRequest optionally links the receipt to a sale.
type CreateDeliveryReceiptRequest struct {
	CreateDocumentRequest
	SaleID string `json:"saleId,omitempty"`
}

// GenerateFromInvoiceRequest asks for a credit note derived from an invoice.
type GenerateFromInvoiceRequest struct {
	InvoiceID string `json:"invoiceId" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// GenerateFromSaleRequest asks for a delivery receipt derived from a sale.
type GenerateFromSaleRequest struct {
	SaleID string `json:"saleId" binding:"required"`
}
