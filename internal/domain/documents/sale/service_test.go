package sale_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/documents/documentstest"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/ledger"
)

func newService() (*sale.Service, *documentstest.Repo[*sale.Sale], *documentstest.Harness) {
	repo := documentstest.NewRepo(func(d *sale.Sale) id.ID { return d.ID })
	h := documentstest.NewHarness()
	h.Tx.Join(repo)
	return sale.NewService(repo, h.Writer), repo, h
}

func newSale(clientID id.ID, lines map[id.ID]int64) *sale.Sale {
	doc := sale.NewSale(clientID, "Client Test")
	for productID, qty := range lines {
		doc.AddLine(productID, "article", qty, types.MustMoney("100"), types.Zero())
	}
	return doc
}

func TestCreate_TakesStockOut(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Imprimante", "hardware", 5)

	doc := newSale(id.New(), map[id.ID]int64{productID: 3})
	require.NoError(t, svc.Create(ctx, doc))

	assert.True(t, strings.HasPrefix(doc.Number, "FAC-"), doc.Number)
	assert.Equal(t, int64(2), h.Store.Stock(productID))

	movements := h.Store.MovementsFor(productID)
	require.Len(t, movements, 1)
	assert.Equal(t, ledger.DirectionOut, movements[0].Direction)
	assert.Equal(t, doc.Number, movements[0].Reference)
}

func TestCreate_InsufficientStockAbortsInvoice(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Scanner", "hardware", 2)

	doc := newSale(id.New(), map[id.ID]int64{productID: 5})
	err := svc.Create(ctx, doc)

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)

	assert.Equal(t, 1, h.Tx.RolledBack)
	assert.Equal(t, int64(2), h.Store.Stock(productID), "stock untouched")
	assert.Empty(t, h.Store.MovementsFor(productID))
}

func TestCreate_ServiceLinesDoNotTouchStock(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	serviceID := h.Store.AddProduct("Installation réseau", "service", 0)

	doc := newSale(id.New(), map[id.ID]int64{serviceID: 1})
	require.NoError(t, svc.Create(ctx, doc))

	assert.Equal(t, int64(0), h.Store.Stock(serviceID))
	assert.Empty(t, h.Store.MovementsFor(serviceID))
}

func TestUpdate_IncreaseIsAvailabilityChecked(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Vidéoprojecteur", "hardware", 5)
	clientID := id.New()

	doc := newSale(clientID, map[id.ID]int64{productID: 3})
	require.NoError(t, svc.Create(ctx, doc))
	require.Equal(t, int64(2), h.Store.Stock(productID))

	// Asking for 6 means 3 more than already taken; only 2 remain.
	edited := newSale(clientID, map[id.ID]int64{productID: 6})
	edited.ID = doc.ID
	err := svc.Update(ctx, edited)

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(2), h.Store.Stock(productID))
}

func TestUpdate_DecreaseReturnsGoods(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Serveur", "hardware", 10)
	clientID := id.New()

	doc := newSale(clientID, map[id.ID]int64{productID: 8})
	require.NoError(t, svc.Create(ctx, doc))
	require.Equal(t, int64(2), h.Store.Stock(productID))

	edited := newSale(clientID, map[id.ID]int64{productID: 5})
	edited.ID = doc.ID
	require.NoError(t, svc.Update(ctx, edited))
	assert.Equal(t, int64(5), h.Store.Stock(productID))
}

func TestDelete_RestoresStock(t *testing.T) {
	svc, repo, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Tablette", "hardware", 7)

	doc := newSale(id.New(), map[id.ID]int64{productID: 4})
	require.NoError(t, svc.Create(ctx, doc))
	require.Equal(t, int64(3), h.Store.Stock(productID))

	require.NoError(t, svc.Delete(ctx, doc.ID))
	assert.Equal(t, int64(7), h.Store.Stock(productID))
	assert.Equal(t, 0, repo.Count())

	movements := h.Store.MovementsFor(productID)
	require.Len(t, movements, 2)
	assert.Equal(t, ledger.SourceSale.Cancellation(), movements[1].SourceType)
	assert.Equal(t, ledger.DirectionIn, movements[1].Direction)
}

func TestUpdateStatus_SameStatusIsSilent(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Routeur", "hardware", 10)

	doc := newSale(id.New(), map[id.ID]int64{productID: 2})
	require.NoError(t, svc.Create(ctx, doc))

	ch, unsubscribe := h.Bus.Subscribe(8)
	defer unsubscribe()

	// Invoices start out "Confirmée"; re-saving it is a no-op and
	// subscribers must not be told anything changed.
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusConfirmed))
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s/%s", ev.Entity, ev.Action)
	default:
	}

	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusCancelled))
	select {
	case ev := <-ch:
		assert.Equal(t, events.EntitySale, ev.Entity)
		assert.Equal(t, events.ActionStatusChanged, ev.Action)
	default:
		t.Fatal("expected a status_changed event")
	}
}
