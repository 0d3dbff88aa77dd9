package dto

import (
	"gescom/internal/core/types"
	"gescom/internal/domain/catalogs/counterparty"
	"gescom/internal/domain/catalogs/product"
)

// --- Products ---

// CreateProductRequest creates a catalog product. Stock is deliberately
// absent: the counter starts at zero and moves only through the ledger.
type CreateProductRequest struct {
	Code          string      `json:"code" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	Category      string      `json:"category" binding:"required"`
	SalePrice     types.Money `json:"salePrice"`
	PurchasePrice types.Money `json:"purchasePrice"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.Category)
	p.SalePrice = r.SalePrice
	p.PurchasePrice = r.PurchasePrice
	return p
}

// UpdateProductRequest updates a product. Nil fields are left untouched.
type UpdateProductRequest struct {
	Code          *string      `json:"code,omitempty"`
	Name          *string      `json:"name,omitempty"`
	Category      *string      `json:"category,omitempty"`
	SalePrice     *types.Money `json:"salePrice,omitempty"`
	PurchasePrice *types.Money `json:"purchasePrice,omitempty"`
}

// ApplyTo applies the update to an existing product.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.SalePrice != nil {
		p.SalePrice = *r.SalePrice
	}
	if r.PurchasePrice != nil {
		p.PurchasePrice = *r.PurchasePrice
	}
}

// --- Counterparties ---

// CreateCounterpartyRequest creates a client or supplier.
type CreateCounterpartyRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Kind    string `json:"kind" binding:"required,oneof=client supplier"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateCounterpartyRequest) ToEntity() *counterparty.Counterparty {
	c := counterparty.NewCounterparty(r.Code, r.Name, counterparty.Kind(r.Kind))
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	return c
}

// UpdateCounterpartyRequest updates a counterparty. Nil fields are left
// untouched. Kind is immutable once documents reference the record, so it
// is not editable here.
type UpdateCounterpartyRequest struct {
	Code    *string `json:"code,omitempty"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ApplyTo applies the update to an existing counterparty.
func (r *UpdateCounterpartyRequest) ApplyTo(c *counterparty.Counterparty) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
}
