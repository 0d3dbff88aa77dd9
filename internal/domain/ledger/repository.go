package ledger

import (
	"context"
	"time"

	"gescom/internal/core/id"
)

// Repository defines persistence for the movement journal.
type Repository interface {
	// CreateMovements appends movement rows. Must run in the caller's
	// transaction; the ledger is never committed independently.
	CreateMovements(ctx context.Context, movements []Movement) error

	// GetBySource retrieves the movements tied to one source document.
	// Cancellation rows carry their own source type and are not returned
	// for the original type.
	GetBySource(ctx context.Context, sourceType SourceType, sourceID id.ID) ([]Movement, error)

	// List retrieves movements for the audit journal, newest first.
	List(ctx context.Context, filter MovementFilter) ([]Movement, error)

	// SumByProduct returns the signed movement sum for one product.
	// Used by consistency checks against the denormalized counter.
	SumByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// ProductGateway is the ledger's only path to the product record. The
// stock counter is read under row lock and adjusted here and nowhere else.
type ProductGateway interface {
	// GetForUpdate loads the product with a row lock held for the rest of
	// the transaction.
	GetForUpdate(ctx context.Context, productID id.ID) (ProductInfo, error)

	// AdjustStock applies a signed delta to the product's stock counter.
	AdjustStock(ctx context.Context, productID id.ID, delta int64) error
}

// ProductInfo is the product projection the ledger needs.
type ProductInfo struct {
	ID       id.ID
	Name     string
	Category string
	Stock    int64
}

// MovementFilter for the audit journal.
type MovementFilter struct {
	ProductID  *id.ID
	SourceType *SourceType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}
