// Package delivery_receipt provides the DeliveryReceipt document service.
package delivery_receipt

import (
	"context"
	"fmt"

	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents"
	"gescom/internal/domain/documents/sale"
	"gescom/pkg/logger"
)

// SaleSource reads invoices for GenerateFromSale. Satisfied by
// sale.Service.
type SaleSource interface {
	GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error)
}

// Service provides business operations for delivery receipts. No operation
// here touches the stock ledger: the linked invoice owns the stock effect.
type Service struct {
	repo   Repository
	writer *documents.Writer
	sales  SaleSource
}

func NewService(repo Repository, writer *documents.Writer, sales SaleSource) *Service {
	return &Service{repo: repo, writer: writer, sales: sales}
}

// Create persists the receipt.
func (s *Service) Create(ctx context.Context, doc *DeliveryReceipt) error {
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
		return s.repo.ReplaceLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityDeliveryReceipt, events.ActionCreated, doc)
	logger.Info(ctx, "delivery receipt created", "id", doc.ID, "number", doc.Number)
	return nil
}

// GenerateFromSale builds and persists the delivery paper for an invoice:
// same client, same lines, linked back to the sale.
func (s *Service) GenerateFromSale(ctx context.Context, saleID id.ID) (*DeliveryReceipt, error) {
	invoice, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("load invoice: %w", err)
	}

	doc := NewDeliveryReceipt(invoice.CounterpartyID, invoice.CounterpartyName)
	doc.SaleID = invoice.ID
	doc.Comment = fmt.Sprintf("Livraison de la facture %s", invoice.Number)
	for _, line := range invoice.Lines {
		doc.AddLine(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice, line.DiscountPct)
	}

	if err := s.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update replaces header and lines.
func (s *Service) Update(ctx context.Context, doc *DeliveryReceipt) error {
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
		return s.repo.ReplaceLines(ctx, doc.ID, doc.Lines)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityDeliveryReceipt, events.ActionUpdated, doc)
	return nil
}

// Delete removes the receipt and its lines.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.writer.Run(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, docID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, docID)
	})
	if err != nil {
		return err
	}

	s.writer.Notify(events.EntityDeliveryReceipt, events.ActionDeleted, map[string]any{"id": docID})
	logger.Info(ctx, "delivery receipt deleted", "id", docID)
	return nil
}

// GetByID retrieves a delivery receipt with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*DeliveryReceipt, error) {
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

// List retrieves delivery receipts matching the filter.
func (s *Service) List(ctx context.Context, filter documents.ListFilter) ([]*DeliveryReceipt, error) {
	return s.repo.List(ctx, filter)
}
