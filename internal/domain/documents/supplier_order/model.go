// Package supplier_order provides the SupplierOrder document (commande
// fournisseur). Stock only moves when the order reaches the delivered
// status, never at creation.
package supplier_order

import (
	"context"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

// SupplierOrder represents an order placed with a supplier.
type SupplierOrder struct {
	entity.Document
}

// NewSupplierOrder creates a supplier order in the pending status.
func NewSupplierOrder(counterpartyID id.ID, counterpartyName string) *SupplierOrder {
	return &SupplierOrder{Document: entity.NewDocument(counterpartyID, counterpartyName)}
}

// Validate implements entity.Validatable.
func (o *SupplierOrder) Validate(ctx context.Context) error {
	return o.Document.Validate(ctx)
}
