// Package credit_note provides the CreditNote document (avoir). A credit
// note returns sold goods to stock, but only once it is confirmed.
package credit_note

import (
	"context"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

// CreditNote represents a client credit note, usually issued against an
// existing invoice.
type CreditNote struct {
	entity.Document

	// InvoiceID references the invoice being credited. Optional: standalone
	// credit notes are allowed.
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`

	// Reason is the mandatory business justification.
	Reason string `db:"reason" json:"reason"`
}

// NewCreditNote creates a credit note in the pending status. Stock moves
// only when it is confirmed.
func NewCreditNote(clientID id.ID, clientName, reason string) *CreditNote {
	return &CreditNote{
		Document: entity.NewDocument(clientID, clientName),
		Reason:   reason,
	}
}

// Validate implements entity.Validatable.
func (c *CreditNote) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}
	if c.Reason == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}
	return nil
}
