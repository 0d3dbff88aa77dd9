// Package purchase_order provides the PurchaseOrder document (bon de
// commande). Like supplier orders, stock only moves on delivery.
package purchase_order

import (
	"context"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

// PurchaseOrder represents a purchase order sent to a supplier.
type PurchaseOrder struct {
	entity.Document
}

// NewPurchaseOrder creates a purchase order in the pending status.
func NewPurchaseOrder(counterpartyID id.ID, counterpartyName string) *PurchaseOrder {
	return &PurchaseOrder{Document: entity.NewDocument(counterpartyID, counterpartyName)}
}

// Validate implements entity.Validatable.
func (o *PurchaseOrder) Validate(ctx context.Context) error {
	return o.Document.Validate(ctx)
}
