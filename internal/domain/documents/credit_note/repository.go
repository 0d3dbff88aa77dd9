package credit_note

import "gescom/internal/domain/documents"

// Repository defines storage operations for credit notes.
type Repository = documents.Repository[*CreditNote]
