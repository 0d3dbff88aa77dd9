package sale

import "gescom/internal/domain/documents"

// Repository defines storage operations for sales.
type Repository = documents.Repository[*Sale]
