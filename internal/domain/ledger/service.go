package ledger

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/domain/catalogs/product"
	"gescom/pkg/logger"
)

// Service is the single component allowed to mutate stock. It appends
// movement rows and adjusts the product counter in lock-step, inside the
// caller's transaction.
type Service struct {
	repo     Repository
	products ProductGateway
}

// NewService creates a new stock ledger service.
func NewService(repo Repository, products ProductGateway) *Service {
	return &Service{repo: repo, products: products}
}

// Apply records the entries and adjusts product stock. Service-category
// products are skipped entirely — their stock never changes and no
// movement row is written for them.
//
// Apply must be called within the caller's transaction so that a failure in
// sibling writes rolls the stock change back too.
func (s *Service) Apply(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	movements := make([]Movement, 0, len(entries))
	for i, e := range entries {
		if e.Quantity <= 0 {
			return apperror.NewValidation(fmt.Sprintf("entry %d: quantity must be positive", i)).
				WithDetail("product_id", e.ProductID.String())
		}
		if id.IsNil(e.SourceID) {
			return apperror.NewValidation(fmt.Sprintf("entry %d: source document is required", i))
		}
		if e.Direction != DirectionIn && e.Direction != DirectionOut {
			return apperror.NewValidation(fmt.Sprintf("entry %d: invalid direction", i))
		}

		p, err := s.products.GetForUpdate(ctx, e.ProductID)
		if err != nil {
			return fmt.Errorf("load product %s: %w", e.ProductID, err)
		}
		if p.Category == product.CategoryService {
			continue
		}

		delta := e.Quantity
		if e.Direction == DirectionOut {
			delta = -delta
			if e.CheckStock && p.Stock < e.Quantity {
				return apperror.NewInsufficientStock(e.ProductID.String(), e.Quantity, p.Stock)
			}
		}

		if err := s.products.AdjustStock(ctx, e.ProductID, delta); err != nil {
			return fmt.Errorf("adjust stock for %s: %w", e.ProductID, err)
		}

		movements = append(movements, Movement{
			ID:          id.New(),
			ProductID:   e.ProductID,
			ProductName: p.Name,
			Quantity:    e.Quantity,
			Direction:   e.Direction,
			SourceType:  e.SourceType,
			SourceID:    e.SourceID,
			Reference:   e.Reference,
			Reason:      e.Reason,
			CreatedAt:   time.Now().UTC(),
		})
	}

	if len(movements) == 0 {
		return nil
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"source_type", movements[0].SourceType,
		"source_id", movements[0].SourceID,
	)
	return nil
}

// DeltaSpec describes a reconciliation of applied stock against the
// wanted per-product quantities of a source document.
type DeltaSpec struct {
	SourceType SourceType
	SourceID   id.ID
	Reference  string

	// Direction is the family's applying direction (IN for receptions and
	// delivered orders, OUT for sales).
	Direction Direction

	// Quantities is the wanted per-product quantity. Nil or empty means
	// "nothing applied", i.e. a full reversal.
	Quantities map[id.ID]int64

	Reason string

	// CheckStock enforces availability on entries that take stock out.
	CheckStock bool
}

// ApplyDelta reconciles previously applied quantities against the wanted
// quantities, emitting only the difference. Products applied before and
// absent now are fully reversed; increases add, decreases subtract. A
// second identical call is a no-op — this is what makes document edits and
// repeated status saves idempotent with respect to stock.
func (s *Service) ApplyDelta(ctx context.Context, spec DeltaSpec) error {
	applied, err := s.AppliedQuantities(ctx, spec.SourceType, spec.SourceID)
	if err != nil {
		return err
	}

	entries := make([]Entry, 0, len(spec.Quantities)+len(applied))
	for productID, wanted := range spec.Quantities {
		entries = appendDeltaEntry(entries, spec, productID, wanted-applied[productID])
	}
	for productID, had := range applied {
		if _, still := spec.Quantities[productID]; !still {
			entries = appendDeltaEntry(entries, spec, productID, -had)
		}
	}

	return s.Apply(ctx, entries)
}

// Reverse emits compensating movements for the net quantity previously
// applied under the source, tagged with the cancellation source type. The
// original rows are kept: the audit trail shows both sides rather than
// deleting history.
//
// Reverse must run in the caller's transaction. A failed reversal aborts
// the whole operation — stock is never left inconsistent silently.
func (s *Service) Reverse(ctx context.Context, sourceType SourceType, sourceID id.ID, direction Direction, reference, reason string) error {
	err := s.ApplyDelta(ctx, DeltaSpec{
		SourceType: sourceType,
		SourceID:   sourceID,
		Reference:  reference,
		Direction:  direction,
		Reason:     reason,
	})
	if err != nil {
		return fmt.Errorf("reverse %s/%s: %w", sourceType, sourceID, err)
	}
	return nil
}

// AppliedQuantities returns the net applied quantity per product for a
// source, counting its cancellation rows as well.
func (s *Service) AppliedQuantities(ctx context.Context, sourceType SourceType, sourceID id.ID) (map[id.ID]int64, error) {
	net := make(map[id.ID]int64)

	for _, st := range []SourceType{sourceType, sourceType.Cancellation()} {
		movements, err := s.repo.GetBySource(ctx, st, sourceID)
		if err != nil {
			return nil, fmt.Errorf("load movements for %s/%s: %w", st, sourceID, err)
		}
		for _, m := range movements {
			net[m.ProductID] += m.SignedQuantity()
		}
	}

	// Normalize sign: for OUT-applying families the net is negative.
	for productID, qty := range net {
		if qty < 0 {
			net[productID] = -qty
		}
	}
	return net, nil
}

// List returns audit journal movements.
func (s *Service) List(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	return s.repo.List(ctx, filter)
}

// VerifyProduct checks the central consistency invariant for one product:
// the counter must equal the signed movement sum.
func (s *Service) VerifyProduct(ctx context.Context, productID id.ID) error {
	sum, err := s.repo.SumByProduct(ctx, productID)
	if err != nil {
		return err
	}
	p, err := s.products.GetForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	if p.Category == product.CategoryService {
		return nil
	}
	if p.Stock != sum {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule, "stock counter diverged from movement sum").
			WithDetail("product_id", productID.String()).
			WithDetail("counter", p.Stock).
			WithDetail("movement_sum", sum)
	}
	return nil
}

func appendDeltaEntry(entries []Entry, spec DeltaSpec, productID id.ID, diff int64) []Entry {
	switch {
	case diff > 0:
		entries = append(entries, Entry{
			ProductID:  productID,
			Quantity:   diff,
			Direction:  spec.Direction,
			SourceType: spec.SourceType,
			SourceID:   spec.SourceID,
			Reference:  spec.Reference,
			Reason:     spec.Reason,
			CheckStock: spec.CheckStock && spec.Direction == DirectionOut,
		})
	case diff < 0:
		entries = append(entries, Entry{
			ProductID:  productID,
			Quantity:   -diff,
			Direction:  spec.Direction.Opposite(),
			SourceType: spec.SourceType.Cancellation(),
			SourceID:   spec.SourceID,
			Reference:  spec.Reference,
			Reason:     spec.Reason,
			// Compensating rows are never blocked by availability: undoing
			// a reception may legitimately drive the counter negative.
			CheckStock: false,
		})
	}
	return entries
}
