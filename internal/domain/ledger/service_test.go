package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/ledger"
	"gescom/internal/domain/ledger/ledgertest"
)

func newService(t *testing.T) (*ledger.Service, *ledgertest.Store) {
	t.Helper()
	store := ledgertest.NewStore()
	return ledger.NewService(store, store), store
}

func TestApply_AdjustsCounterInLockStep(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	productID := store.AddProduct("Clavier mécanique", "hardware", 3)
	docID := id.New()

	err := svc.Apply(ctx, []ledger.Entry{{
		ProductID:  productID,
		Quantity:   10,
		Direction:  ledger.DirectionIn,
		SourceType: ledger.SourceReceptionNote,
		SourceID:   docID,
		Reference:  "BR-2026-0001",
	}})
	require.NoError(t, err)

	assert.Equal(t, int64(13), store.Stock(productID))
	movements := store.MovementsFor(productID)
	require.Len(t, movements, 1)
	assert.Equal(t, "Clavier mécanique", movements[0].ProductName)
	assert.Equal(t, ledger.DirectionIn, movements[0].Direction)

	// Invariant: counter equals signed movement sum (seed of 3 aside).
	sum, err := store.SumByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, store.Stock(productID)-3, sum)
}

func TestApply_ServiceProductsAreExempt(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	serviceID := store.AddProduct("Installation sur site", product.CategoryService, 0)

	err := svc.Apply(ctx, []ledger.Entry{{
		ProductID:  serviceID,
		Quantity:   5,
		Direction:  ledger.DirectionOut,
		SourceType: ledger.SourceSale,
		SourceID:   id.New(),
		Reference:  "FAC-2026-0001",
	}})
	require.NoError(t, err)

	assert.Equal(t, int64(0), store.Stock(serviceID))
	assert.Empty(t, store.MovementsFor(serviceID))
}

func TestApply_InsufficientStockRejected(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	productID := store.AddProduct("Écran 27\"", "hardware", 2)

	err := svc.Apply(ctx, []ledger.Entry{{
		ProductID:  productID,
		Quantity:   5,
		Direction:  ledger.DirectionOut,
		SourceType: ledger.SourceSale,
		SourceID:   id.New(),
		Reference:  "FAC-2026-0002",
		CheckStock: true,
	}})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(2), store.Stock(productID), "failed apply must not touch stock")
	assert.Empty(t, store.MovementsFor(productID))
}

func TestApply_RejectsNonPositiveQuantity(t *testing.T) {
	svc, store := newService(t)
	productID := store.AddProduct("Câble HDMI", "hardware", 0)

	err := svc.Apply(context.Background(), []ledger.Entry{{
		ProductID:  productID,
		Quantity:   0,
		Direction:  ledger.DirectionIn,
		SourceType: ledger.SourceReceptionNote,
		SourceID:   id.New(),
	}})
	assert.Error(t, err)
}

func TestReverse_AppendsCompensatingMovements(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	productID := store.AddProduct("Souris sans fil", "hardware", 0)
	docID := id.New()

	require.NoError(t, svc.Apply(ctx, []ledger.Entry{{
		ProductID:  productID,
		Quantity:   10,
		Direction:  ledger.DirectionIn,
		SourceType: ledger.SourceReceptionNote,
		SourceID:   docID,
		Reference:  "BR-2026-0002",
	}}))
	require.Equal(t, int64(10), store.Stock(productID))

	require.NoError(t, svc.Reverse(ctx, ledger.SourceReceptionNote, docID, ledger.DirectionIn, "BR-2026-0002", "suppression du bon"))

	// Stock back to the pre-creation value, two rows in the journal.
	assert.Equal(t, int64(0), store.Stock(productID))
	movements := store.MovementsFor(productID)
	require.Len(t, movements, 2)
	assert.Equal(t, ledger.DirectionIn, movements[0].Direction)
	assert.Equal(t, ledger.DirectionOut, movements[1].Direction)
	assert.Equal(t, ledger.SourceReceptionNote.Cancellation(), movements[1].SourceType)
}

func TestReverse_NoMovementsIsNoOp(t *testing.T) {
	svc, store := newService(t)
	productID := store.AddProduct("Onduleur", "hardware", 4)

	err := svc.Reverse(context.Background(), ledger.SourceSale, id.New(), ledger.DirectionOut, "FAC-2026-0001", "annulation")
	require.NoError(t, err)
	assert.Equal(t, int64(4), store.Stock(productID))
}

func TestReverse_IsNeverBlockedByStockCheck(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	productID := store.AddProduct("Imprimante", "hardware", 0)
	docID := id.New()

	require.NoError(t, svc.Apply(ctx, []ledger.Entry{{
		ProductID:  productID,
		Quantity:   5,
		Direction:  ledger.DirectionIn,
		SourceType: ledger.SourceReceptionNote,
		SourceID:   docID,
		Reference:  "BR-2026-0003",
	}}))

	// Stock drained elsewhere in the meantime.
	require.NoError(t, store.AdjustStock(ctx, productID, -5))

	// Deleting the reception note still reverses; stock may go negative so
	// the discrepancy is visible instead of hidden.
	require.NoError(t, svc.Reverse(ctx, ledger.SourceReceptionNote, docID, ledger.DirectionIn, "BR-2026-0003", "suppression"))
	assert.Equal(t, int64(-5), store.Stock(productID))
}

func TestApplyDelta_EmitsOnlyDifferences(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	productA := store.AddProduct("Disque SSD", "hardware", 0)
	productB := store.AddProduct("Barrette RAM", "hardware", 0)
	docID := id.New()

	// Original reception: A x10.
	require.NoError(t, svc.Apply(ctx, []ledger.Entry{{
		ProductID:  productA,
		Quantity:   10,
		Direction:  ledger.DirectionIn,
		SourceType: ledger.SourceReceptionNote,
		SourceID:   docID,
		Reference:  "BR-2026-0004",
	}}))

	// Edit: A corrected to 7, B x3 added.
	edit := ledger.DeltaSpec{
		SourceType: ledger.SourceReceptionNote,
		SourceID:   docID,
		Reference:  "BR-2026-0004",
		Direction:  ledger.DirectionIn,
		Quantities: map[id.ID]int64{productA: 7, productB: 3},
		Reason:     "correction",
	}
	require.NoError(t, svc.ApplyDelta(ctx, edit))

	assert.Equal(t, int64(7), store.Stock(productA), "delta, not re-apply")
	assert.Equal(t, int64(3), store.Stock(productB))

	// Second identical edit is a no-op.
	require.NoError(t, svc.ApplyDelta(ctx, edit))
	assert.Equal(t, int64(7), store.Stock(productA))
	assert.Equal(t, int64(3), store.Stock(productB))
}

func TestApplyDelta_RemovedProductFullyReversed(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	productID := store.AddProduct("Routeur", "hardware", 0)
	docID := id.New()

	require.NoError(t, svc.Apply(ctx, []ledger.Entry{{
		ProductID:  productID,
		Quantity:   4,
		Direction:  ledger.DirectionIn,
		SourceType: ledger.SourceReceptionNote,
		SourceID:   docID,
		Reference:  "BR-2026-0005",
	}}))

	err := svc.ApplyDelta(ctx, ledger.DeltaSpec{
		SourceType: ledger.SourceReceptionNote,
		SourceID:   docID,
		Reference:  "BR-2026-0005",
		Direction:  ledger.DirectionIn,
		Reason:     "ligne retirée",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.Stock(productID))
}

func TestVerifyProduct_DetectsDivergence(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	productID := store.AddProduct("Commutateur", "hardware", 0)
	docID := id.New()

	require.NoError(t, svc.Apply(ctx, []ledger.Entry{{
		ProductID:  productID,
		Quantity:   6,
		Direction:  ledger.DirectionIn,
		SourceType: ledger.SourcePurchaseOrder,
		SourceID:   docID,
		Reference:  "BC-2026-0001",
	}}))
	require.NoError(t, svc.VerifyProduct(ctx, productID))

	// Corrupt the counter behind the ledger's back.
	require.NoError(t, store.AdjustStock(ctx, productID, 1))
	assert.Error(t, svc.VerifyProduct(ctx, productID))
}
