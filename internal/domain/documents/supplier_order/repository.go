package supplier_order

import "gescom/internal/domain/documents"

// Repository defines storage operations for supplier orders.
type Repository = documents.Repository[*SupplierOrder]
