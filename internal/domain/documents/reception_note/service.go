// Package reception_note provides the ReceptionNote document service.
package reception_note

import (
	"context"
	"fmt"

	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents"
	"gescom/internal/domain/ledger"
	"gescom/pkg/logger"
)

// Service provides business operations for reception notes.
//
// A reception note increments stock the moment it is created: the paper
// in hand is the proof of delivery. Edits reconcile by difference and
// deletion compensates, so the journal keeps the full history.
type Service struct {
	repo   Repository
	writer *documents.Writer
}

func NewService(repo Repository, writer *documents.Writer) *Service {
	return &Service{repo: repo, writer: writer}
}

// Create persists the note and applies its quantities to stock, all in one
// transaction. A failure in any step rolls the whole document back.
func (s *Service) Create(ctx context.Context, doc *ReceptionNote) error {
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

		entries := documents.Entries(&doc.Document, ledger.SourceReceptionNote, ledger.DirectionIn, false, "réception de marchandises")
		return s.writer.Ledger().Apply(ctx, entries)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityReceptionNote, events.ActionCreated, doc)
	logger.Info(ctx, "reception note created", "id", doc.ID, "number", doc.Number)
	return nil
}

// Update replaces the note's lines and reconciles stock by difference:
// only changed quantities produce movements, and saving the same content
// twice produces none.
func (s *Service) Update(ctx context.Context, doc *ReceptionNote) error {
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

		delta := documents.Delta(&doc.Document, ledger.SourceReceptionNote, ledger.DirectionIn, false, "correction de réception")
		return s.writer.Ledger().ApplyDelta(ctx, delta)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityReceptionNote, events.ActionUpdated, doc)
	logger.Info(ctx, "reception note updated", "id", doc.ID, "number", doc.Number)
	return nil
}

// Delete removes the note and compensates its stock effect. The original
// movements stay in the journal; opposite rows cancel them.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		err = s.writer.Ledger().Reverse(ctx, ledger.SourceReceptionNote, docID, ledger.DirectionIn, doc.Number, "suppression du bon de réception")
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityReceptionNote, events.ActionDeleted, map[string]any{"id": docID})
	logger.Info(ctx, "reception note deleted", "id", docID)
	return nil
}

// GetByID retrieves a reception note with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*ReceptionNote, error) {
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

// List retrieves reception notes matching the filter.
func (s *Service) List(ctx context.Context, filter documents.ListFilter) ([]*ReceptionNote, error) {
	return s.repo.List(ctx, filter)
}
