package reception_note_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/documents/documentstest"
	"gescom/internal/domain/documents/reception_note"
	"gescom/internal/domain/ledger"
)

func newService() (*reception_note.Service, *documentstest.Repo[*reception_note.ReceptionNote], *documentstest.Harness) {
	repo := documentstest.NewRepo(func(d *reception_note.ReceptionNote) id.ID { return d.ID })
	h := documentstest.NewHarness()
	h.Tx.Join(repo)
	return reception_note.NewService(repo, h.Writer), repo, h
}

func newNote(supplierID id.ID, lines map[id.ID]int64) *reception_note.ReceptionNote {
	doc := reception_note.NewReceptionNote(supplierID, "Fournisseur Test")
	for productID, qty := range lines {
		doc.AddLine(productID, "article", qty, types.MustMoney("10"), types.Zero())
	}
	return doc
}

func TestCreate_AppliesStockAndAssignsNumber(t *testing.T) {
	svc, repo, h := newService()
	ctx := context.Background()
	productA := h.Store.AddProduct("Clavier", "hardware", 0)
	productB := h.Store.AddProduct("Écran", "hardware", 0)

	doc := newNote(id.New(), map[id.ID]int64{productA: 10, productB: 4})
	require.NoError(t, svc.Create(ctx, doc))

	year := fmt.Sprintf("%d", time.Now().Year())
	assert.True(t, strings.HasPrefix(doc.Number, "BR-"+year+"-"), doc.Number)
	assert.Equal(t, int64(10), h.Store.Stock(productA))
	assert.Equal(t, int64(4), h.Store.Stock(productB))
	assert.Equal(t, 1, repo.Count())
	assert.Equal(t, 1, h.Tx.Committed)
}

func TestCreate_MovementFailureRollsBackEverything(t *testing.T) {
	svc, repo, h := newService()
	productID := h.Store.AddProduct("Câble", "hardware", 0)
	h.Store.FailCreate = errors.New("journal unavailable")

	doc := newNote(id.New(), map[id.ID]int64{productID: 5})
	err := svc.Create(context.Background(), doc)

	require.Error(t, err)
	assert.Equal(t, 1, h.Tx.RolledBack, "header, lines and movements share one transaction")
	assert.Equal(t, 0, h.Tx.Committed)

	// Stock is adjusted before the journal write; the rollback must undo it.
	assert.Equal(t, int64(0), h.Store.Stock(productID))
	assert.Empty(t, h.Store.MovementsFor(productID))
	assert.Equal(t, 0, repo.Count())
}

func TestUpdate_ReconcilesStockByDifference(t *testing.T) {
	svc, _, h := newService()
	ctx := context.Background()
	productA := h.Store.AddProduct("Souris", "hardware", 0)
	productB := h.Store.AddProduct("Tapis", "hardware", 0)
	supplierID := id.New()

	doc := newNote(supplierID, map[id.ID]int64{productA: 10})
	require.NoError(t, svc.Create(ctx, doc))

	// Correct A down to 7 and add B x3.
	edited := newNote(supplierID, map[id.ID]int64{productA: 7, productB: 3})
	edited.ID = doc.ID
	require.NoError(t, svc.Update(ctx, edited))

	assert.Equal(t, int64(7), h.Store.Stock(productA))
	assert.Equal(t, int64(3), h.Store.Stock(productB))
	assert.Equal(t, doc.Number, edited.Number, "edits never renumber")

	// Saving the same content again moves nothing.
	journalBefore := len(h.Store.MovementsFor(productA))
	again := newNote(supplierID, map[id.ID]int64{productA: 7, productB: 3})
	again.ID = doc.ID
	require.NoError(t, svc.Update(ctx, again))
	assert.Equal(t, int64(7), h.Store.Stock(productA))
	assert.Len(t, h.Store.MovementsFor(productA), journalBefore)
}

func TestDelete_CompensatesAndKeepsJournal(t *testing.T) {
	svc, repo, h := newService()
	ctx := context.Background()
	productID := h.Store.AddProduct("Onduleur", "hardware", 0)

	doc := newNote(id.New(), map[id.ID]int64{productID: 6})
	require.NoError(t, svc.Create(ctx, doc))
	require.NoError(t, svc.Delete(ctx, doc.ID))

	assert.Equal(t, int64(0), h.Store.Stock(productID))
	assert.Equal(t, 0, repo.Count())

	// Both sides stay in the journal.
	movements := h.Store.MovementsFor(productID)
	require.Len(t, movements, 2)
	assert.Equal(t, ledger.DirectionIn, movements[0].Direction)
	assert.Equal(t, ledger.DirectionOut, movements[1].Direction)
	assert.Equal(t, ledger.SourceReceptionNote.Cancellation(), movements[1].SourceType)
}

func TestCreate_InvalidDocumentRejectedBeforeAnyWrite(t *testing.T) {
	svc, repo, h := newService()

	doc := reception_note.NewReceptionNote(id.New(), "Fournisseur Test") // no lines
	err := svc.Create(context.Background(), doc)

	require.Error(t, err)
	assert.Equal(t, 0, repo.Count())
	assert.Equal(t, 0, h.Tx.Began)
}
