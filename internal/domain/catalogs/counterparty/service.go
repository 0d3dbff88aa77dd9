package counterparty

import (
	"context"

	"gescom/internal/core/apperror"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/core/tx"
	"gescom/pkg/logger"
)

// Service provides business operations for counterparties.
type Service struct {
	repo      Repository
	txManager tx.Manager
	bus       *events.Bus
}

// NewService creates a new counterparty service.
func NewService(repo Repository, txManager tx.Manager, bus *events.Bus) *Service {
	return &Service{repo: repo, txManager: txManager, bus: bus}
}

// Create creates a new counterparty.
func (s *Service) Create(ctx context.Context, c *Counterparty) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(events.Event{Entity: events.EntityCounterparty, Action: events.ActionCreated, Payload: c})
	logger.Info(ctx, "counterparty created", "id", c.ID, "kind", c.Kind)
	return nil
}

// GetByID retrieves a counterparty.
func (s *Service) GetByID(ctx context.Context, counterpartyID id.ID) (*Counterparty, error) {
	return s.repo.GetByID(ctx, counterpartyID)
}

// Update updates a counterparty. Documents keep their name snapshots, so
// renaming never rewrites history.
func (s *Service) Update(ctx context.Context, c *Counterparty) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, c)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(events.Event{Entity: events.EntityCounterparty, Action: events.ActionUpdated, Payload: c})
	return nil
}

// Delete removes a counterparty. Rejected before any write when open
// documents still reference it.
func (s *Service) Delete(ctx context.Context, counterpartyID id.ID) error {
	if _, err := s.repo.GetByID(ctx, counterpartyID); err != nil {
		return err
	}

	open, err := s.repo.HasOpenDocuments(ctx, counterpartyID)
	if err != nil {
		return err
	}
	if open {
		return apperror.NewHasReferences("counterparty", counterpartyID.String())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, counterpartyID)
	})
	if err != nil {
		return err
	}

	s.bus.Publish(events.Event{Entity: events.EntityCounterparty, Action: events.ActionDeleted, Payload: counterpartyID})
	return nil
}

// List retrieves counterparties with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Counterparty, error) {
	return s.repo.List(ctx, filter)
}
