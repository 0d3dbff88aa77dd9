package purchase_order

import "gescom/internal/domain/documents"

// Repository defines storage operations for purchase orders.
type Repository = documents.Repository[*PurchaseOrder]
