// Package ledger provides the stock ledger: an append-only log of inventory
// quantity changes tied to source documents, plus the denormalized stock
// counter on the product record, updated transactionally in lock-step.
//
// Stock is never mutated outside this package.
package ledger

import (
	"time"

	"gescom/internal/core/id"
)

// Direction defines movement direction.
type Direction string

const (
	// DirectionIn increases stock (goods received, returns)
	DirectionIn Direction = "IN"
	// DirectionOut decreases stock (goods sold, reversals of receipts)
	DirectionOut Direction = "OUT"
)

// Opposite returns the inverse direction, used for compensating reversals.
func (d Direction) Opposite() Direction {
	if d == DirectionIn {
		return DirectionOut
	}
	return DirectionIn
}

// SourceType identifies the document family a movement originates from.
type SourceType string

const (
	SourceSale            SourceType = "sale"
	SourceSupplierOrder   SourceType = "supplier_order"
	SourcePurchaseOrder   SourceType = "purchase_order"
	SourceCreditNote      SourceType = "credit_note"
	SourceReceptionNote   SourceType = "reception_note"
	SourceDeliveryReceipt SourceType = "delivery_receipt"
)

// Cancellation returns the tagging variant used for compensating
// reversals, so the audit trail shows both the original and the reversal.
func (s SourceType) Cancellation() SourceType {
	return s + "_cancellation"
}

// Movement is one immutable stock ledger record. Movements are never
// updated or deleted; cancellations append opposite-direction rows.
type Movement struct {
	ID id.ID `db:"id" json:"id"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// ProductName is denormalized for audit display; it must not change
	// when the product is later renamed.
	ProductName string `db:"product_name" json:"productName"`

	// Quantity is always positive; Direction carries the sign.
	Quantity  int64     `db:"quantity" json:"quantity"`
	Direction Direction `db:"direction" json:"direction"`

	SourceType SourceType `db:"source_type" json:"sourceType"`
	SourceID   id.ID      `db:"source_id" json:"sourceId"`

	// Reference is the human-readable document number
	Reference string `db:"reference" json:"reference"`

	// Reason is free text shown in the movement journal
	Reason string `db:"reason" json:"reason,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SignedQuantity returns quantity with direction applied.
func (m *Movement) SignedQuantity() int64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}

// Entry is a request to record one movement. The ledger resolves the
// product (name snapshot, service exemption) itself.
type Entry struct {
	ProductID id.ID
	Quantity  int64
	Direction Direction

	SourceType SourceType
	SourceID   id.ID
	Reference  string
	Reason     string

	// CheckStock enforces availability for OUT entries (sales). Reversal
	// entries leave it unset so a cancellation can never be blocked.
	CheckStock bool
}
