package document_repo

import (
	"gescom/internal/domain/documents/credit_note"
	"gescom/internal/domain/documents/delivery_receipt"
	"gescom/internal/domain/documents/purchase_order"
	"gescom/internal/domain/documents/reception_note"
	"gescom/internal/domain/documents/sale"
	"gescom/internal/domain/documents/supplier_order"
	"gescom/internal/infrastructure/storage/postgres"
)

// One generic base per family. Family-specific columns (supplier_order_id,
// invoice_id, reason, sale_id) ride along through the entity's db tags.

func NewSaleRepo(txm *postgres.TxManager) sale.Repository {
	return NewBaseDocumentRepo(txm, "doc_sales", "doc_sale_lines",
		func() *sale.Sale { return &sale.Sale{} })
}

func NewSupplierOrderRepo(txm *postgres.TxManager) supplier_order.Repository {
	return NewBaseDocumentRepo(txm, "doc_supplier_orders", "doc_supplier_order_lines",
		func() *supplier_order.SupplierOrder { return &supplier_order.SupplierOrder{} })
}

func NewPurchaseOrderRepo(txm *postgres.TxManager) purchase_order.Repository {
	return NewBaseDocumentRepo(txm, "doc_purchase_orders", "doc_purchase_order_lines",
		func() *purchase_order.PurchaseOrder { return &purchase_order.PurchaseOrder{} })
}

func NewCreditNoteRepo(txm *postgres.TxManager) credit_note.Repository {
	return NewBaseDocumentRepo(txm, "doc_credit_notes", "doc_credit_note_lines",
		func() *credit_note.CreditNote { return &credit_note.CreditNote{} })
}

func NewReceptionNoteRepo(txm *postgres.TxManager) reception_note.Repository {
	return NewBaseDocumentRepo(txm, "doc_reception_notes", "doc_reception_note_lines",
		func() *reception_note.ReceptionNote { return &reception_note.ReceptionNote{} })
}

func NewDeliveryReceiptRepo(txm *postgres.TxManager) delivery_receipt.Repository {
	return NewBaseDocumentRepo(txm, "doc_delivery_receipts", "doc_delivery_receipt_lines",
		func() *delivery_receipt.DeliveryReceipt { return &delivery_receipt.DeliveryReceipt{} })
}
