package delivery_receipt_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/id"
	"gescom/internal/core/types"
	"gescom/internal/domain/documents/delivery_receipt"
	"gescom/internal/domain/documents/documentstest"
	"gescom/internal/domain/documents/sale"
)

type fixedSales struct {
	invoice *sale.Sale
}

func (f *fixedSales) GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	return f.invoice, nil
}

func newService(sales delivery_receipt.SaleSource) (*delivery_receipt.Service, *documentstest.Repo[*delivery_receipt.DeliveryReceipt], *documentstest.Harness) {
	repo := documentstest.NewRepo(func(d *delivery_receipt.DeliveryReceipt) id.ID { return d.ID })
	h := documentstest.NewHarness()
	h.Tx.Join(repo)
	return delivery_receipt.NewService(repo, h.Writer, sales), repo, h
}

func TestCreate_NeverTouchesStock(t *testing.T) {
	svc, repo, h := newService(nil)
	ctx := context.Background()
	productID := h.Store.AddProduct("Portable", "hardware", 10)

	doc := delivery_receipt.NewDeliveryReceipt(id.New(), "Client Test")
	doc.AddLine(productID, "Portable", 4, types.MustMoney("800"), types.Zero())
	require.NoError(t, svc.Create(ctx, doc))

	assert.True(t, strings.HasPrefix(doc.Number, "BL-"), doc.Number)
	assert.Equal(t, int64(10), h.Store.Stock(productID), "the invoice owns the stock effect")
	assert.Empty(t, h.Store.MovementsFor(productID))
	assert.Equal(t, 1, repo.Count())
}

func TestGenerateFromSale_CopiesLinesAndLinksBack(t *testing.T) {
	clientID := id.New()
	invoice := sale.NewSale(clientID, "Client Test")
	invoice.Number = "FAC-2026-0007"
	productID := id.New()
	invoice.AddLine(productID, "Routeur", 3, types.MustMoney("120"), types.Zero())

	svc, repo, _ := newService(&fixedSales{invoice: invoice})

	doc, err := svc.GenerateFromSale(context.Background(), invoice.ID)
	require.NoError(t, err)

	assert.Equal(t, invoice.ID, doc.SaleID)
	assert.Equal(t, clientID, doc.CounterpartyID)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, int64(3), doc.Lines[0].Quantity)
	assert.Contains(t, doc.Comment, invoice.Number)
	assert.Equal(t, 1, repo.Count())
}
