package documents

import (
	"context"
	"time"

	"gescom/internal/core/entity"
	"gescom/internal/core/events"
	"gescom/internal/core/numerator"
	"gescom/internal/core/tx"
	"gescom/internal/domain/ledger"
)

// Writer bundles the cross-cutting dependencies every document service
// needs: the transaction manager, the number generator, the stock ledger
// and the event bus. One Run call groups number allocation, header and
// line persistence and ledger application into a single transaction, so
// a failure at any step leaves no partial document behind.
type Writer struct {
	tx     tx.Manager
	nums   numerator.Generator
	ledger *ledger.Service
	bus    *events.Bus
}

func NewWriter(txm tx.Manager, nums numerator.Generator, led *ledger.Service, bus *events.Bus) *Writer {
	return &Writer{tx: txm, nums: nums, ledger: led, bus: bus}
}

// Run executes fn inside a database transaction. Nested calls join the
// surrounding transaction.
func (w *Writer) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return w.tx.RunInTransaction(ctx, fn)
}

// Number allocates the next document number for the family, inside the
// caller's transaction. An already-assigned number is kept as is, which
// makes re-saves idempotent with respect to numbering.
func (w *Writer) Number(ctx context.Context, cfg numerator.Config, period time.Time, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	return w.nums.Next(ctx, cfg, period)
}

// Ledger exposes the stock ledger for stock-affecting operations.
func (w *Writer) Ledger() *ledger.Service {
	return w.ledger
}

// Notify publishes a change event after a successful commit path. Delivery
// is best-effort.
func (w *Writer) Notify(entity events.Entity, action events.Action, payload any) {
	if w.bus == nil {
		return
	}
	w.bus.Publish(events.Event{Entity: entity, Action: action, Payload: payload})
}

// Entries converts a document's lines into ledger entries, merging lines
// that share a product. Reference carries the document number into the
// audit journal.
func Entries(doc *entity.Document, sourceType ledger.SourceType, direction ledger.Direction, checkStock bool, reason string) []ledger.Entry {
	byProduct := doc.QuantityByProduct()
	entries := make([]ledger.Entry, 0, len(byProduct))
	for productID, qty := range byProduct {
		entries = append(entries, ledger.Entry{
			ProductID:  productID,
			Quantity:   qty,
			Direction:  direction,
			SourceType: sourceType,
			SourceID:   doc.ID,
			Reference:  doc.Number,
			Reason:     reason,
			CheckStock: checkStock && direction == ledger.DirectionOut,
		})
	}
	return entries
}

// Delta builds the reconciliation spec for an edited document: the ledger
// compares the wanted quantities against what it already applied and emits
// only the difference.
func Delta(doc *entity.Document, sourceType ledger.SourceType, direction ledger.Direction, checkStock bool, reason string) ledger.DeltaSpec {
	return ledger.DeltaSpec{
		SourceType: sourceType,
		SourceID:   doc.ID,
		Reference:  doc.Number,
		Direction:  direction,
		Quantities: doc.QuantityByProduct(),
		Reason:     reason,
		CheckStock: checkStock,
	}
}
