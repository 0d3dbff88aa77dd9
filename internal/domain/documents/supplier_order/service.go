// Package supplier_order provides the SupplierOrder document service.
package supplier_order

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

// Service provides business operations for supplier orders.
//
// The lifecycle machine decides the stock effect of every status change:
// entering "Livrée" brings the ordered quantities in, leaving it takes
// them back out, everything else is stock-neutral. Re-saving the current
// status is a no-op, so a double-click on the same button cannot double
// the stock.
type Service struct {
	repo    Repository
	writer  *documents.Writer
	machine *lifecycle.Machine
}

func NewService(repo Repository, writer *documents.Writer) *Service {
	return &Service{
		repo:    repo,
		writer:  writer,
		machine: lifecycle.SupplierOrderMachine(),
	}
}

// Create persists the order. No stock moves: ordered goods are not owned
// goods.
func (s *Service) Create(ctx context.Context, doc *SupplierOrder) error {
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
			// Created directly in the delivered status: apply immediately.
			entries := documents.Entries(&doc.Document, ledger.SourceSupplierOrder, ledger.DirectionIn, false, "commande fournisseur livrée")
			return s.writer.Ledger().Apply(ctx, entries)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntitySupplierOrder, events.ActionCreated, doc)
	logger.Info(ctx, "supplier order created", "id", doc.ID, "number", doc.Number, "status", doc.Status)
	return nil
}

// Update replaces header and lines. When the order is already delivered the
// stock is reconciled against the edited quantities by difference.
func (s *Service) Update(ctx context.Context, doc *SupplierOrder) error {
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
		// Status changes go through UpdateStatus so the machine sees them.
		doc.Status = current.Status

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.ReplaceLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		if current.Status == entity.StatusDelivered {
			delta := documents.Delta(&doc.Document, ledger.SourceSupplierOrder, ledger.DirectionIn, false, "correction de commande livrée")
			return s.writer.Ledger().ApplyDelta(ctx, delta)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntitySupplierOrder, events.ActionUpdated, doc)
	logger.Info(ctx, "supplier order updated", "id", doc.ID, "number", doc.Number)
	return nil
}

// UpdateStatus moves the order to a new status and applies the machine's
// ledger effect in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, docID id.ID, to entity.Status) error {
	var doc *SupplierOrder
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
			// Delta instead of blind apply: after a deliver/cancel/deliver
			// cycle only the quantities not already net-applied move.
			delta := documents.Delta(&doc.Document, ledger.SourceSupplierOrder, ledger.DirectionIn, false, "commande fournisseur livrée")
			if err := s.writer.Ledger().ApplyDelta(ctx, delta); err != nil {
				return err
			}
		case lifecycle.EffectReverse:
			err := s.writer.Ledger().Reverse(ctx, ledger.SourceSupplierOrder, docID, ledger.DirectionIn, doc.Number, "annulation de livraison")
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
		s.writer.Notify(events.EntitySupplierOrder, events.ActionStatusChanged, doc)
		logger.Info(ctx, "supplier order status changed", "id", docID, "status", to)
	}
	return nil
}

// Delete removes the order. A delivered order's stock effect is compensated
// first, in the same transaction.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		err = s.writer.Ledger().Reverse(ctx, ledger.SourceSupplierOrder, docID, ledger.DirectionIn, doc.Number, "suppression de la commande")
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntitySupplierOrder, events.ActionDeleted, map[string]any{"id": docID})
	logger.Info(ctx, "supplier order deleted", "id", docID)
	return nil
}

// GetByID retrieves a supplier order with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*SupplierOrder, error) {
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

// List retrieves supplier orders matching the filter.
func (s *Service) List(ctx context.Context, filter documents.ListFilter) ([]*SupplierOrder, error) {
	return s.repo.List(ctx, filter)
}
