// Package sale provides the Sale document service.
package sale

import (
	"context"
	"fmt"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents"
	"gescom/internal/domain/ledger"
	"gescom/pkg/logger"
)

// Service provides business operations for sales.
//
// Availability is enforced inside the creating transaction, under a row
// lock on each product, so two concurrent sales cannot both take the last
// unit. Service products are exempt: they have no stock to take.
type Service struct {
	repo   Repository
	writer *documents.Writer
}

func NewService(repo Repository, writer *documents.Writer) *Service {
	return &Service{repo: repo, writer: writer}
}

// Create persists the invoice and takes its quantities out of stock. An
// insufficient-stock error on any line aborts the whole invoice.
func (s *Service) Create(ctx context.Context, doc *Sale) error {
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

		entries := documents.Entries(&doc.Document, ledger.SourceSale, ledger.DirectionOut, true, "vente")
		return s.writer.Ledger().Apply(ctx, entries)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntitySale, events.ActionCreated, doc)
	logger.Info(ctx, "sale created", "id", doc.ID, "number", doc.Number, "total", doc.TotalTTC)
	return nil
}

// Update replaces the invoice's lines and reconciles stock by difference.
// Quantity increases are availability-checked; decreases return goods.
func (s *Service) Update(ctx context.Context, doc *Sale) error {
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

		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if err := s.repo.ReplaceLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		delta := documents.Delta(&doc.Document, ledger.SourceSale, ledger.DirectionOut, true, "correction de facture")
		return s.writer.Ledger().ApplyDelta(ctx, delta)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntitySale, events.ActionUpdated, doc)
	logger.Info(ctx, "sale updated", "id", doc.ID, "number", doc.Number)
	return nil
}

// UpdateStatus writes a new status. Sales carry their stock effect from
// creation, so status changes are stock-neutral bookkeeping.
func (s *Service) UpdateStatus(ctx context.Context, docID id.ID, to entity.Status) error {
	if !entity.IsKnownStatus(to) {
		return apperror.NewValidation("unknown status").
			WithDetail("field", "status").
			WithDetail("value", string(to))
	}

	var doc *Sale
	changed := false
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
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

	// Re-saving the current status is a no-op; subscribers only hear
	// about actual transitions.
	if changed {
		s.writer.Notify(events.EntitySale, events.ActionStatusChanged, doc)
	}
	return nil
}

// Delete removes the invoice and returns its quantities to stock.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		err = s.writer.Ledger().Reverse(ctx, ledger.SourceSale, docID, ledger.DirectionOut, doc.Number, "suppression de la facture")
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntitySale, events.ActionDeleted, map[string]any{"id": docID})
	logger.Info(ctx, "sale deleted", "id", docID)
	return nil
}

// GetByID retrieves a sale with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
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

// List retrieves sales matching the filter.
func (s *Service) List(ctx context.Context, filter documents.ListFilter) ([]*Sale, error) {
	return s.repo.List(ctx, filter)
}
