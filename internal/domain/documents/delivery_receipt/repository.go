package delivery_receipt

import "gescom/internal/domain/documents"

// Repository defines storage operations for delivery receipts.
type Repository = documents.Repository[*DeliveryReceipt]
