package credit_note_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/documents/credit_note"
	"gescom/internal/domain/documents/documentstest"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/ledger"
)

// fixedInvoices serves a canned invoice to GenerateFromInvoice.
type fixedInvoices struct {
	invoice *sale.Sale
}

func (f *fixedInvoices) GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	return f.invoice, nil
}

func newService(invoices credit_note.InvoiceSource) (*credit_note.Service, *documentstest.Repo[*credit_note.CreditNote], *documentstest.Harness) {
	repo := documentstest.NewRepo(func(d *credit_note.CreditNote) id.ID { return d.ID })
	h := documentstest.NewHarness()
	h.Tx.Join(repo)
	return credit_note.NewService(repo, h.Writer, invoices), repo, h
}

func newCreditNote(clientID id.ID, reason string, lines map[id.ID]int64) *credit_note.CreditNote {
	doc := credit_note.NewCreditNote(clientID, "Client Test", reason)
	for productID, qty := range lines {
		doc.AddLine(productID, "article", qty, types.MustMoney("40"), types.Zero())
	}
	return doc
}

func TestConfirm_ReturnsGoodsExactlyOnce(t *testing.T) {
	svc, _, h := newService(nil)
	ctx := context.Background()
	productID := h.Store.AddProduct("Moniteur", "hardware", 0)

	doc := newCreditNote(id.New(), "produit défectueux", map[id.ID]int64{productID: 2})
	require.NoError(t, svc.Create(ctx, doc))
	assert.True(t, strings.HasPrefix(doc.Number, "AV-"), doc.Number)
	assert.Equal(t, int64(0), h.Store.Stock(productID), "pending note moves nothing")

	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusConfirmed))
	assert.Equal(t, int64(2), h.Store.Stock(productID))

	// Confirming again cannot return the same goods twice.
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusConfirmed))
	assert.Equal(t, int64(2), h.Store.Stock(productID))
	assert.Len(t, h.Store.MovementsFor(productID), 1)
}

func TestCancel_AfterConfirmationTakesGoodsBack(t *testing.T) {
	svc, _, h := newService(nil)
	ctx := context.Background()
	productID := h.Store.AddProduct("Clavier", "hardware", 0)

	doc := newCreditNote(id.New(), "retour client", map[id.ID]int64{productID: 3})
	require.NoError(t, svc.Create(ctx, doc))
	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusConfirmed))
	require.Equal(t, int64(3), h.Store.Stock(productID))

	require.NoError(t, svc.UpdateStatus(ctx, doc.ID, entity.StatusCancelled))
	assert.Equal(t, int64(0), h.Store.Stock(productID))

	movements := h.Store.MovementsFor(productID)
	require.Len(t, movements, 2)
	assert.Equal(t, ledger.SourceCreditNote.Cancellation(), movements[1].SourceType)
}

func TestCreate_ReasonIsMandatory(t *testing.T) {
	svc, repo, _ := newService(nil)
	productID := id.New()

	doc := newCreditNote(id.New(), "", map[id.ID]int64{productID: 1})
	err := svc.Create(context.Background(), doc)

	require.Error(t, err)
	assert.Equal(t, 0, repo.Count())
}

func TestGenerateFromInvoice_CopiesLinesAndLinksBack(t *testing.T) {
	clientID := id.New()
	invoice := sale.NewSale(clientID, "Client Test")
	productID := id.New()
	invoice.Number = "FAC-2026-0042"
	invoice.AddLine(productID, "Portable 15 pouces", 2, types.MustMoney("650"), types.Zero())

	svc, repo, h := newService(&fixedInvoices{invoice: invoice})

	doc, err := svc.GenerateFromInvoice(context.Background(), invoice.ID, "erreur de facturation")
	require.NoError(t, err)

	assert.Equal(t, invoice.ID, doc.InvoiceID)
	assert.Equal(t, clientID, doc.CounterpartyID)
	assert.Equal(t, entity.StatusPending, doc.Status, "confirmation is a separate step")
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, productID, doc.Lines[0].ProductID)
	assert.Equal(t, int64(2), doc.Lines[0].Quantity)
	assert.True(t, doc.TotalHT.Equal(invoice.TotalHT))
	assert.Equal(t, 1, repo.Count())
	assert.Equal(t, 1, h.Tx.Committed)
}
