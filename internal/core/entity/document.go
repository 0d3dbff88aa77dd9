package entity

import (
	"context"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
)

// Status is a document lifecycle status. The values match the labels the
// desktop client displays, so they are stored and compared verbatim.
type Status string

const (
	StatusPending   Status = "En attente"
	StatusConfirmed Status = "Confirmée"
	StatusDelivered Status = "Livrée"
	StatusCancelled Status = "Annulée"
)

// KnownStatuses lists every valid document status.
var KnownStatuses = []Status{StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled}

// IsKnownStatus reports whether s is one of the defined statuses.
func IsKnownStatus(s Status) bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Document is the base type for business documents: sales, supplier orders,
// purchase orders, credit notes, reception notes, delivery receipts.
type Document struct {
	BaseEntity

	// Number is the document number (auto-generated, unique within family+year)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// CounterpartyID references the client or supplier the document binds
	CounterpartyID id.ID `db:"counterparty_id" json:"counterpartyId"`

	// CounterpartyName is an immutable snapshot for historical display
	CounterpartyName string `db:"counterparty_name" json:"counterpartyName"`

	// Status drives the lifecycle machine of the family
	Status Status `db:"status" json:"status"`

	// Monetary totals, recalculated from lines
	TotalHT  types.Money `db:"total_ht" json:"totalHT"`
	TotalTTC types.Money `db:"total_ttc" json:"totalTTC"`

	// Comment is an optional user note
	Comment string `db:"comment" json:"comment,omitempty"`

	// Lines is the table part; owned exclusively by the document and
	// replaced as a unit on edit.
	Lines []DocumentLine `db:"-" json:"lines"`
}

// NewDocument creates a new Document in pending status.
func NewDocument(counterpartyID id.ID, counterpartyName string) Document {
	return Document{
		BaseEntity:       NewBaseEntity(),
		Date:             time.Now().UTC(),
		CounterpartyID:   counterpartyID,
		CounterpartyName: counterpartyName,
		Status:           StatusPending,
		TotalHT:          types.Zero(),
		TotalTTC:         types.Zero(),
		Lines:            make([]DocumentLine, 0),
	}
}

// DocumentLine is one item row of a document. ProductName is a deliberate
// denormalized snapshot: historical documents must not change when the
// product is later renamed.
type DocumentLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`

	Quantity    int64       `db:"quantity" json:"quantity"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	DiscountPct types.Money `db:"discount_pct" json:"discountPct"`
	Total       types.Money `db:"total" json:"total"`
}

// AddLine appends an item row and recalculates totals.
func (d *Document) AddLine(productID id.ID, productName string, quantity int64, unitPrice, discountPct types.Money) {
	line := DocumentLine{
		LineID:      id.New(),
		LineNo:      len(d.Lines) + 1,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		DiscountPct: discountPct,
		Total:       types.LineTotal(quantity, unitPrice, discountPct),
	}
	d.Lines = append(d.Lines, line)
	d.RecalculateTotals()
}

// ReplaceLines swaps the full item set (edit semantics are whole-replace,
// never partial patch) and renumbers rows.
func (d *Document) ReplaceLines(lines []DocumentLine) {
	d.Lines = make([]DocumentLine, 0, len(lines))
	for i, l := range lines {
		if id.IsNil(l.LineID) {
			l.LineID = id.New()
		}
		l.LineNo = i + 1
		l.Total = types.LineTotal(l.Quantity, l.UnitPrice, l.DiscountPct)
		d.Lines = append(d.Lines, l)
	}
	d.RecalculateTotals()
}

// RecalculateTotals updates document totals from lines.
func (d *Document) RecalculateTotals() {
	total := types.Zero()
	for _, line := range d.Lines {
		total = total.Add(line.Total)
	}
	d.TotalHT = total
	// Tax display is out of scope for the ledger core; TTC mirrors HT here
	// and is recomputed by the presentation layer where rates apply.
	d.TotalTTC = total
}

// QuantityByProduct aggregates line quantities per product.
// Used by the lifecycle engine to derive stock effects and edit deltas.
func (d *Document) QuantityByProduct() map[id.ID]int64 {
	byProduct := make(map[id.ID]int64, len(d.Lines))
	for _, line := range d.Lines {
		byProduct[line.ProductID] += line.Quantity
	}
	return byProduct
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.CounterpartyID) {
		return apperror.NewValidation("counterparty is required").
			WithDetail("field", "counterpartyId")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if !IsKnownStatus(d.Status) {
		return apperror.NewValidation("unknown status").
			WithDetail("field", "status").
			WithDetail("value", string(d.Status))
	}
	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range d.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
