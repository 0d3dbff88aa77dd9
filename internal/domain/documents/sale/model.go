// Package sale provides the Sale document (facture de vente). A sale takes
// its quantities out of stock at creation time, after an availability
// check, so an invoice can never promise goods that are not there.
package sale

import (
	"context"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

// Sale represents a client invoice.
type Sale struct {
	entity.Document
}

// NewSale creates a sale. Invoices are binding from the moment they are
// issued, so they start confirmed rather than pending.
func NewSale(clientID id.ID, clientName string) *Sale {
	doc := entity.NewDocument(clientID, clientName)
	doc.Status = entity.StatusConfirmed
	return &Sale{Document: doc}
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	return s.Document.Validate(ctx)
}
