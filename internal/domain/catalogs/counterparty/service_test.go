package counterparty_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/apperror"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/core/tx"
	"gescom/internal/domain/catalogs/counterparty"
)

type fakeRepo struct {
	byID    map[id.ID]*counterparty.Counterparty
	open    map[id.ID]bool
	deleted []id.ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID: make(map[id.ID]*counterparty.Counterparty),
		open: make(map[id.ID]bool),
	}
}

func (r *fakeRepo) Create(ctx context.Context, c *counterparty.Counterparty) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, cpID id.ID) (*counterparty.Counterparty, error) {
	c, ok := r.byID[cpID]
	if !ok {
		return nil, apperror.NewNotFound("counterparty", cpID.String())
	}
	return c, nil
}

func (r *fakeRepo) Update(ctx context.Context, c *counterparty.Counterparty) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, cpID id.ID) error {
	delete(r.byID, cpID)
	r.deleted = append(r.deleted, cpID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter counterparty.ListFilter) ([]*counterparty.Counterparty, error) {
	out := make([]*counterparty.Counterparty, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) HasOpenDocuments(ctx context.Context, cpID id.ID) (bool, error) {
	return r.open[cpID], nil
}

func TestDelete_RejectedWhileDocumentsReference(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := counterparty.NewService(repo, &tx.MockManager{}, events.NewBus())

	supplier := counterparty.NewCounterparty("F001", "Fournitures Dupont", counterparty.KindSupplier)
	require.NoError(t, svc.Create(ctx, supplier))
	repo.open[supplier.ID] = true

	err := svc.Delete(ctx, supplier.ID)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeHasReferences, appErr.Code)

	// Record untouched.
	assert.Empty(t, repo.deleted)
	_, err = svc.GetByID(ctx, supplier.ID)
	assert.NoError(t, err)
}

func TestDelete_AllowedOnceDocumentsCancelled(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := counterparty.NewService(repo, &tx.MockManager{}, events.NewBus())

	client := counterparty.NewCounterparty("C001", "Boutique Martin", counterparty.KindClient)
	require.NoError(t, svc.Create(ctx, client))

	require.NoError(t, svc.Delete(ctx, client.ID))
	assert.Equal(t, []id.ID{client.ID}, repo.deleted)
}

func TestCreate_RejectsUnknownKind(t *testing.T) {
	ctx := context.Background()
	svc := counterparty.NewService(newFakeRepo(), &tx.MockManager{}, events.NewBus())

	bad := counterparty.NewCounterparty("X001", "Indéterminé", counterparty.Kind("autre"))
	err := svc.Create(ctx, bad)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
