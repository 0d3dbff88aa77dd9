package supplier_order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/documents/documentstest"
	"gescom/internal/domain/documents/supplier_order"
	"gescom/internal/domain/ledger"
)

func newService() (*supplier_order.Service, *documentstest.Repo[*supplier_order.SupplierOrder], *documentstest.Harness) {
	repo := documentstest.NewRepo(func(d *supplier_order.SupplierOrder) id.ID { return d.ID })
	h := documentstest.NewHarness()
	h.Tx.Join(repo)
	return supplier_order.NewService(repo, h.Writer), repo, h
}

func newOrder(supplierID id.ID, lines map[id.ID]int64) *supplier_order.SupplierOrder {
	doc := supplier_order.NewSupplierOrder(supplierID, "Fournisseur Test")
	for productID, qty := range lines {
		doc.AddLine(productID, "article", qty, types.MustMoney("25"), types.Zero())
	}
	return doc
}

// The full life of an order: ordered goods are not stock, delivered goods
// are, a cancelled delivery puts things back the way they were.
func TestLifecycle_OrderToDeliveryToCancellation(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Disque SSD", "hardware", 0)

	doc := newOrder(id.New(), map[id.ID]int64{productID: 20})
	require.NoError(t, svc.Create(ctx, doc))
	assert.Equal(t, entity.StatusPending, doc.Status)
	assert.Equal(t, int64(0), h.Store.Stock(productID), "creation moves nothing")

	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusConfirmed))
	assert.Equal(t, int64(0), h.Store.Stock(productID), "confirmation moves nothing")

	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusDelivered))
	assert.Equal(t, int64(20), h.Store.Stock(productID))

	// Saving "Livrée" again must not double the stock.
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusDelivered))
	assert.Equal(t, int64(20), h.Store.Stock(productID))

	// Stepping back out of delivered reverses the receipt.
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusConfirmed))
	assert.Equal(t, int64(0), h.Store.Stock(productID))

	movements := h.Store.MovementsFor(productID)
	require.Len(t, movements, 2)
	assert.Equal(t, ledger.SourceSupplierOrder, movements[0].SourceType)
	assert.Equal(t, ledger.SourceSupplierOrder.Cancellation(), movements[1].SourceType)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Carte mère", "hardware", 0)

	doc := newOrder(id.New(), map[id.ID]int64{productID: 5})
	require.NoError(t, svc.Create(ctx, doc))

	err := svc.UpdateStatus(ctx, doc.ID, entity.Status("Expédiée"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)

	got, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status, "status untouched after rejection")
}

func TestUpdate_DeliveredOrderReconcilesStock(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Barrette RAM", "hardware", 0)
	supplierID := id.New()

	doc := newOrder(supplierID, map[id.ID]int64{productID: 8})
	require.NoError(t, svc.Create(ctx, doc))
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusDelivered))
	require.Equal(t, int64(8), h.Store.Stock(productID))

	edited := newOrder(supplierID, map[id.ID]int64{productID: 5})
	edited.ID = doc.ID
	require.NoError(t, svc.Update(ctx, edited))
	assert.Equal(t, int64(5), h.Store.Stock(productID))
}

func TestDelete_DeliveredOrderRestoresStock(t *testing.T) {
	svc, repo, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Boîtier", "hardware", 0)

	doc := newOrder(id.New(), map[id.ID]int64{productID: 12})
	require.NoError(t, svc.Create(ctx, doc))
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusDelivered))
	require.Equal(t, int64(12), h.Store.Stock(productID))

	require.NoError(t, svc.Delete(ctx, doc.ID))
	assert.Equal(t, int64(0), h.Store.Stock(productID))
	assert.Equal(t, 0, repo.Count())
}

func TestDelete_PendingOrderMovesNothing(t *testing.T) {
	svc, repo, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Ventilateur", "hardware", 3)

	doc := newOrder(id.New(), map[id.ID]int64{productID: 9})
	require.NoError(t, svc.Create(ctx, doc))
	require.NoError(t, svc.Delete(ctx, doc.ID))

	assert.Equal(t, int64(3), h.Store.Stock(productID))
	assert.Empty(t, h.Store.MovementsFor(productID))
	assert.Equal(t, 0, repo.Count())
}

func TestUpdateStatus_SameStatusIsSilent(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Switch", "hardware", 0)

	doc := newOrder(id.New(), map[id.ID]int64{productID: 4})
	require.NoError(t, svc.Create(ctx, doc))
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusDelivered))

	ch, unsubscribe := h.Bus.Subscribe(8)
	defer unsubscribe()

	// Re-saving "Livrée" moves no stock and publishes nothing.
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusDelivered))
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %s/%s", ev.Entity, ev.Action)
	default:
	}

	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusCancelled))
	select {
	case ev := <-ch:
		assert.Equal(t, events.EntitySupplierOrder, ev.Entity)
		assert.Equal(t, events.ActionStatusChanged, ev.Action)
	default:
		t.Fatal("expected a status_changed event")
	}
}
