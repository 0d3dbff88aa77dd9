package product

import (
	"context"

	"gescom/internal/core/id"
)

// Repository defines persistence operations for products.
//
// Stock is intentionally absent from Update: the denormalized counter is
// owned by the stock ledger and adjusted only through its gateway.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ID) error
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
}

// ListFilter for filtering products.
type ListFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}
