package counterparty

import (
	"context"

	"gescom/internal/core/id"
)

// Repository defines persistence operations for counterparties.
type Repository interface {
	Create(ctx context.Context, c *Counterparty) error
	GetByID(ctx context.Context, counterpartyID id.ID) (*Counterparty, error)
	Update(ctx context.Context, c *Counterparty) error
	Delete(ctx context.Context, counterpartyID id.ID) error
	List(ctx context.Context, filter ListFilter) ([]*Counterparty, error)

	// HasOpenDocuments reports whether any non-cancelled document still
	// references the counterparty. Deletion is rejected while true.
	HasOpenDocuments(ctx context.Context, counterpartyID id.ID) (bool, error)
}

// ListFilter for filtering counterparties.
type ListFilter struct {
	Search string
	Kind   Kind
	Limit  int
	Offset int
}
