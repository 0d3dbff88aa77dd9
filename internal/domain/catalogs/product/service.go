package product

import (
	"context"
	"fmt"

	"gescom/internal/core/apperror"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/core/tx"
	"gescom/pkg/logger"
)

// Service provides business operations for products.
type Service struct {
	repo      Repository
	txManager tx.Manager
	bus       *events.Bus
}

// NewService creates a new product service.
func NewService(repo Repository, txManager tx.Manager, bus *events.Bus) *Service {
	return &Service{repo: repo, txManager: txManager, bus: bus}
}

// Create creates a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	s.bus.Publish(events.Event{Entity: events.EntityProduct, Action: events.ActionCreated, Payload: p})
	logger.Info(ctx, "product created", "id", p.ID, "code", p.Code)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update updates a product. The stock counter is never written here; the
// repository implementation excludes it from the UPDATE set.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, p)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(events.Event{Entity: events.EntityProduct, Action: events.ActionUpdated, Payload: p})
	return nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if !p.IsService() && p.Stock != 0 {
		return apperror.NewHasReferences("product", productID.String()).
			WithDetail("stock", p.Stock)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, productID)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(events.Event{Entity: events.EntityProduct, Action: events.ActionDeleted, Payload: productID})
	return nil
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.List(ctx, filter)
}
