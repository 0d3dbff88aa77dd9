// Package counterparty provides the Counterparty catalog.
// Counterparties are the business partners documents bind to: clients
// (sales, credit notes, delivery receipts) and suppliers (orders,
// reception notes).
package counterparty

import (
	"context"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
)

// Kind defines the counterparty role.
type Kind string

const (
	KindClient   Kind = "client"
	KindSupplier Kind = "supplier"
)

// Counterparty represents a client or supplier.
type Counterparty struct {
	entity.Catalog

	// Kind defines whether this is a client or a supplier
	Kind Kind `db:"kind" json:"kind"`

	// Contact fields
	Email   string `db:"email" json:"email,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
}

// NewCounterparty creates a new counterparty.
func NewCounterparty(code, name string, kind Kind) *Counterparty {
	return &Counterparty{
		Catalog: entity.NewCatalog(code, name),
		Kind:    kind,
	}
}

// Validate implements entity.Validatable.
func (c *Counterparty) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if c.Kind != KindClient && c.Kind != KindSupplier {
		return apperror.NewValidation("kind must be client or supplier").
			WithDetail("field", "kind").
			WithDetail("value", string(c.Kind))
	}
	return nil
}
