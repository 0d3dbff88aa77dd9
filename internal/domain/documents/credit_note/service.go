// Package credit_note provides the CreditNote document service.
package credit_note

import (
	"context"
	"fmt"

	"gescom/internal/core/entity"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/ledger"
	"gescom/internal/domain/lifecycle"
	"gescom/pkg/logger"
)

// InvoiceSource reads invoices for GenerateFromInvoice. Satisfied by
// sale.Service.
type InvoiceSource interface {
	GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error)
}

// Service provides business operations for credit notes.
//
// Confirmation is the stock-affecting status: entering "Confirmée" returns
// the credited quantities to stock, leaving it takes them back out. The
// transition table makes re-confirming a no-op, so a credit note can never
// return the same goods twice.
type Service struct {
	repo     Repository
	writer   *documents.Writer
	invoices InvoiceSource
	machine  *lifecycle.Machine
}

func NewService(repo Repository, writer *documents.Writer, invoices InvoiceSource) *Service {
	return &Service{
		repo:     repo,
		writer:   writer,
		invoices: invoices,
		machine:  lifecycle.CreditNoteMachine(),
	}
}

// Create persists the credit note. Stock moves only if it is created
// directly in the confirmed status.
func (s *Service) Create(ctx context.Context, doc *CreditNote) error {
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

		if doc.Status == entity.StatusConfirmed {
			entries := documents.Entries(&doc.Document, ledger.SourceCreditNote, ledger.DirectionIn, false, doc.Reason)
			return s.writer.Ledger().Apply(ctx, entries)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityCreditNote, events.ActionCreated, doc)
	logger.Info(ctx, "credit note created", "id", doc.ID, "number", doc.Number, "status", doc.Status)
	return nil
}

// GenerateFromInvoice builds and persists a credit note crediting the full
// invoice: same client, same lines, linked back to the invoice. The note
// starts pending; confirming it is a separate, deliberate step.
func (s *Service) GenerateFromInvoice(ctx context.Context, invoiceID id.ID, reason string) (*CreditNote, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice: %w", err)
	}

	doc := NewCreditNote(invoice.CounterpartyID, invoice.CounterpartyName, reason)
	doc.InvoiceID = invoice.ID
	doc.Comment = fmt.Sprintf("Avoir sur facture %s", invoice.Number)
	for _, line := range invoice.Lines {
		doc.AddLine(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice, line.DiscountPct)
	}

	if err := s.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update replaces header and lines. A confirmed note's stock is reconciled
// against the edited quantities by difference.
func (s *Service) Update(ctx context.Context, doc *CreditNote) error {
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

		if current.Status == entity.StatusConfirmed {
			delta := documents.Delta(&doc.Document, ledger.SourceCreditNote, ledger.DirectionIn, false, "correction d'avoir")
			return s.writer.Ledger().ApplyDelta(ctx, delta)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityCreditNote, events.ActionUpdated, doc)
	logger.Info(ctx, "credit note updated", "id", doc.ID, "number", doc.Number)
	return nil
}

// UpdateStatus moves the note to a new status with the machine's ledger
// effect applied in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, docID id.ID, to entity.Status) error {
	var doc *CreditNote
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
			delta := documents.Delta(&doc.Document, ledger.SourceCreditNote, ledger.DirectionIn, false, doc.Reason)
			if err := s.writer.Ledger().ApplyDelta(ctx, delta); err != nil {
				return err
			}
		case lifecycle.EffectReverse:
			err := s.writer.Ledger().Reverse(ctx, ledger.SourceCreditNote, docID, ledger.DirectionIn, doc.Number, "annulation de l'avoir")
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
		s.writer.Notify(events.EntityCreditNote, events.ActionStatusChanged, doc)
		logger.Info(ctx, "credit note status changed", "id", docID, "status", to)
	}
	return nil
}

// Delete removes the note, compensating any applied stock first.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		err = s.writer.Ledger().Reverse(ctx, ledger.SourceCreditNote, docID, ledger.DirectionIn, doc.Number, "suppression de l'avoir")
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityCreditNote, events.ActionDeleted, map[string]any{"id": docID})
	logger.Info(ctx, "credit note deleted", "id", docID)
	return nil
}

// GetByID retrieves a credit note with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*CreditNote, error) {
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

// List retrieves credit notes matching the filter.
func (s *Service) List(ctx context.Context, filter documents.ListFilter) ([]*CreditNote, error) {
	return s.repo.List(ctx, filter)
}
