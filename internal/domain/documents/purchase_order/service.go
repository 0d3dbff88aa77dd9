// Package purchase_order provides the PurchaseOrder document service.
package purchase_order

import (
	"context"
	"fmt"

	"gescom/internal/core/entity"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents"
	"gescom/internal/domain/ledger"
	"gescom/internal/domain/lifecycle"
	"gescom/pkg/logger"
)

// Service provides business operations for purchase orders. The lifecycle
// mirrors supplier orders: goods enter stock when the order is delivered
// and leave again if the delivery is cancelled.
type Service struct {
	repo    Repository
	writer  *documents.Writer
	machine *lifecycle.Machine
}

func NewService(repo Repository, writer *documents.Writer) *Service {
	return &Service{
		repo:    repo,
		writer:  writer,
		machine: lifecycle.PurchaseOrderMachine(),
	}
}

// Create persists the order without touching stock.
func (s *Service) Create(ctx context.Context, doc *PurchaseOrder) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.writer.Run(ctx, func(ctx context.Context) error {
		number, err := s.writer.Number(ctx, NumberConfig(), doc.Date, doc.Number)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}
		if err := s.repo.ReplaceLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		if doc.Status == entity.StatusDelivered {
			entries := documents.Entries(&doc.Document, ledger.SourcePurchaseOrder, ledger.DirectionIn, false, "bon de commande livré")
			return s.writer.Ledger().Apply(ctx, entries)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityPurchaseOrder, events.ActionCreated, doc)
	logger.Info(ctx, "purchase order created", "id", doc.ID, "number", doc.Number, "status", doc.Status)
	return nil
}

// Update replaces header and lines, reconciling stock when the order is
// already delivered.
func (s *Service) Update(ctx context.Context, doc *PurchaseOrder) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := s.writer.Run(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, doc.ID)
		if err != nil {
			return err
		}
		doc.Number = current.Number
		doc.Version = current.Version
		doc.Status = current.Status

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.ReplaceLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		if current.Status == entity.StatusDelivered {
			delta := documents.Delta(&doc.Document, ledger.SourcePurchaseOrder, ledger.DirectionIn, false, "correction de bon de commande livré")
			return s.writer.Ledger().ApplyDelta(ctx, delta)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityPurchaseOrder, events.ActionUpdated, doc)
	logger.Info(ctx, "purchase order updated", "id", doc.ID, "number", doc.Number)
	return nil
}

// UpdateStatus moves the order to a new status with the machine's ledger
// effect applied in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, docID id.ID, to entity.Status) error {
	var doc *PurchaseOrder
	changed := false
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		effect, err := s.machine.Effect(doc.Status, to)
		if err != nil {
			return err
		}

		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		switch effect {
		case lifecycle.EffectApply:
			delta := documents.Delta(&doc.Document, ledger.SourcePurchaseOrder, ledger.DirectionIn, false, "bon de commande livré")
			if err := s.writer.Ledger().ApplyDelta(ctx, delta); err != nil {
				return err
			}
		case lifecycle.EffectReverse:
			err := s.writer.Ledger().Reverse(ctx, ledger.SourcePurchaseOrder, docID, ledger.DirectionIn, doc.Number, "annulation de livraison")
			if err != nil {
				return err
			}
		}

		if doc.Status == to {
			return nil
		}
		doc.Status = to
		changed = true
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return err
	}

	if changed {
		s.writer.Notify(events.EntityPurchaseOrder, events.ActionStatusChanged, doc)
		logger.Info(ctx, "purchase order status changed", "id", docID, "status", to)
	}
	return nil
}

// Delete removes the order, compensating any applied stock first.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		err = s.writer.Ledger().Reverse(ctx, ledger.SourcePurchaseOrder, docID, ledger.DirectionIn, doc.Number, "suppression du bon de commande")
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityPurchaseOrder, events.ActionDeleted, map[string]any{"id": docID})
	logger.Info(ctx, "purchase order deleted", "id", docID)
	return nil
}

// GetByID retrieves a purchase order with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*PurchaseOrder, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// List retrieves purchase orders matching the filter.
func (s *Service) List(ctx context.Context, filter documents.ListFilter) ([]*PurchaseOrder, error) {
	return s.repo.List(ctx, filter)
}
