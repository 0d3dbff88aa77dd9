// Package reception_note provides the ReceptionNote document (bon de
// réception). It records goods physically received from a supplier and is
// the only document whose stock effect happens at creation time.
package reception_note

import (
	"context"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

// ReceptionNote represents a goods reception against a supplier order.
type ReceptionNote struct {
	entity.Document

	// SupplierOrderID references the order being received. Optional: direct
	// receptions without an order are allowed.
	SupplierOrderID id.ID `db:"supplier_order_id" json:"supplierOrderId"`
}

// NewReceptionNote creates a reception note. Receptions document goods
// already in hand, so they start delivered.
func NewReceptionNote(counterpartyID id.ID, counterpartyName string) *ReceptionNote {
	doc := entity.NewDocument(counterpartyID, counterpartyName)
	doc.Status = entity.StatusDelivered
	return &ReceptionNote{Document: doc}
}

// Validate implements entity.Validatable.
func (r *ReceptionNote) Validate(ctx context.Context) error {
	return r.Document.Validate(ctx)
}
