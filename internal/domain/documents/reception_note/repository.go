package reception_note

import "gescom/internal/domain/documents"

// Repository defines storage operations for reception notes.
type Repository = documents.Repository[*ReceptionNote]
