// Package delivery_receipt provides the DeliveryReceipt document (bon de
// livraison). It is the shipping paper that accompanies an invoice: the
// invoice already took the goods out of stock, so the receipt itself is
// stock-neutral.
package delivery_receipt

import (
	"context"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

// DeliveryReceipt represents the delivery paper issued for a sale.
type DeliveryReceipt struct {
	entity.Document

	// SaleID references the invoice being delivered. Optional: a receipt
	// can be issued standalone.
	SaleID id.ID `db:"sale_id" json:"saleId"`
}

// NewDeliveryReceipt creates a delivery receipt marked delivered.
func NewDeliveryReceipt(clientID id.ID, clientName string) *DeliveryReceipt {
	doc := entity.NewDocument(clientID, clientName)
	doc.Status = entity.StatusDelivered
	return &DeliveryReceipt{Document: doc}
}

// Validate implements entity.Validatable.
func (d *DeliveryReceipt) Validate(ctx context.Context) error {
	return d.Document.Validate(ctx)
}
