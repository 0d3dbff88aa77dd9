// Package documents holds what all document families share: the generic
// repository contract, the list filter and the transactional writer that
// groups numbering, persistence and stock application.
package documents

import (
	"context"
	"time"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

// Repository is the storage contract every document family implements. T is
// the family's header type; lines are stored whole-replace alongside it.
type Repository[T any] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, docID id.ID) (T, error)
	// GetForUpdate locks the header row for the duration of the caller's
	// transaction so concurrent edits and status changes serialize.
	GetForUpdate(ctx context.Context, docID id.ID) (T, error)
	Update(ctx context.Context, doc T) error
	// Delete removes the header and its lines. Movements are not touched
	// here — compensation is the ledger's job.
	Delete(ctx context.Context, docID id.ID) error
	List(ctx context.Context, filter ListFilter) ([]T, error)

	GetLines(ctx context.Context, docID id.ID) ([]entity.DocumentLine, error)
	// ReplaceLines deletes the existing lines and inserts the given ones.
	ReplaceLines(ctx context.Context, docID id.ID, lines []entity.DocumentLine) error
}

// ListFilter narrows document listings. Zero values mean "no constraint".
type ListFilter struct {
	Search         string
	Status         entity.Status
	CounterpartyID id.ID
	DateFrom       time.Time
	DateTo         time.Time
	Limit          int
	Offset         int
}
