// Package product provides the Product catalog.
package product

import (
	"context"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/types"
)

// CategoryService is the sentinel category value marking stock-exempt
// products (services). A service's stock never changes.
const CategoryService = "service"

// Product represents an item sold or purchased.
//
// Stock is the denormalized current quantity, authoritative for display and
// sale validation. It is mutated exclusively through the stock ledger; no
// document handler writes it directly.
type Product struct {
	entity.Catalog

	// Category classifies the product; CategoryService marks stock-exempt items
	Category string `db:"category" json:"category"`

	// Stock is the current quantity on hand (units)
	Stock int64 `db:"stock" json:"stock"`

	// SalePrice is the default unit price for sale documents
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// PurchasePrice is the default unit price for supplier documents
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`
}

// NewProduct creates a new product with zero stock.
func NewProduct(code, name, category string) *Product {
	return &Product{
		Catalog:       entity.NewCatalog(code, name),
		Category:      category,
		SalePrice:     types.Zero(),
		PurchasePrice: types.Zero(),
	}
}

// IsService reports whether the product is stock-exempt.
func (p *Product) IsService() bool {
	return p.Category == CategoryService
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if p.Category == "" {
		return apperror.NewValidation("category is required").
			WithDetail("field", "category")
	}
	if p.SalePrice.IsNegative() || p.PurchasePrice.IsNegative() {
		return apperror.NewValidation("prices cannot be negative").
			WithDetail("field", "salePrice")
	}
	return nil
}
