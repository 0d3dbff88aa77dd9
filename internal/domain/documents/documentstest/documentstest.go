// Package documentstest provides in-memory fixtures for document service
// tests: a generic repository and a harness bundling the writer's
// dependencies, all without a database.
package documentstest

import (
	"context"
	"sync"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/events"
	"gescom/internal/core/id"
	"gescom/internal/core/numerator"
	"gescom/internal/core/tx"
	"gescom/internal/domain/documents"
	"gescom/internal/domain/ledger"
	"gescom/internal/domain/ledger/ledgertest"
)

// Repo is an in-memory documents.Repository. Key extracts the document ID
// from the header type. Like ledgertest.Store it implements
// tx.Transactional, so a repo joined to the harness transaction manager is
// restored when the service's transaction rolls back.
type Repo[T any] struct {
	mu    sync.Mutex
	key   func(T) id.ID
	docs  map[id.ID]T
	order []id.ID
	lines map[id.ID][]entity.DocumentLine

	// FailCreate and FailLines inject faults for atomicity tests.
	FailCreate error
	FailLines  error

	snapshots []repoSnapshot[T]
}

type repoSnapshot[T any] struct {
	docs  map[id.ID]T
	order []id.ID
	lines map[id.ID][]entity.DocumentLine
}

func NewRepo[T any](key func(T) id.ID) *Repo[T] {
	return &Repo[T]{
		key:   key,
		docs:  make(map[id.ID]T),
		lines: make(map[id.ID][]entity.DocumentLine),
	}
}

// Begin implements tx.Transactional.
func (r *Repo[T]) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := repoSnapshot[T]{
		docs:  make(map[id.ID]T, len(r.docs)),
		order: append([]id.ID(nil), r.order...),
		lines: make(map[id.ID][]entity.DocumentLine, len(r.lines)),
	}
	for docID, doc := range r.docs {
		snap.docs[docID] = doc
	}
	for docID, lines := range r.lines {
		snap.lines[docID] = append([]entity.DocumentLine(nil), lines...)
	}
	r.snapshots = append(r.snapshots, snap)
}

// Rollback implements tx.Transactional.
func (r *Repo[T]) Rollback() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return
	}
	snap := r.snapshots[len(r.snapshots)-1]
	r.snapshots = r.snapshots[:len(r.snapshots)-1]
	r.docs = snap.docs
	r.order = snap.order
	r.lines = snap.lines
}

// Count returns the number of stored documents.
func (r *Repo[T]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func (r *Repo[T]) Create(ctx context.Context, doc T) error {
	if r.FailCreate != nil {
		return r.FailCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	docID := r.key(doc)
	r.docs[docID] = doc
	r.order = append(r.order, docID)
	return nil
}

func (r *Repo[T]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[docID]
	if !ok {
		var zero T
		return zero, apperror.NewNotFound("document", docID)
	}
	return doc, nil
}

func (r *Repo[T]) GetForUpdate(ctx context.Context, docID id.ID) (T, error) {
	return r.GetByID(ctx, docID)
}

func (r *Repo[T]) Update(ctx context.Context, doc T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	docID := r.key(doc)
	if _, ok := r.docs[docID]; !ok {
		return apperror.NewNotFound("document", docID)
	}
	r.docs[docID] = doc
	return nil
}

func (r *Repo[T]) Delete(ctx context.Context, docID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[docID]; !ok {
		return apperror.NewNotFound("document", docID)
	}
	delete(r.docs, docID)
	delete(r.lines, docID)
	for i, stored := range r.order {
		if stored == docID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Repo[T]) List(ctx context.Context, filter documents.ListFilter) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.order))
	for _, docID := range r.order {
		out = append(out, r.docs[docID])
	}
	return out, nil
}

func (r *Repo[T]) GetLines(ctx context.Context, docID id.ID) ([]entity.DocumentLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.DocumentLine(nil), r.lines[docID]...), nil
}

func (r *Repo[T]) ReplaceLines(ctx context.Context, docID id.ID, lines []entity.DocumentLine) error {
	if r.FailLines != nil {
		return r.FailLines
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[docID] = append([]entity.DocumentLine(nil), lines...)
	return nil
}

var _ tx.Transactional = (*Repo[any])(nil)

// Harness wires the writer's dependencies on in-memory fakes.
type Harness struct {
	Tx     *tx.MockManager
	Nums   *numerator.MockGenerator
	Store  *ledgertest.Store
	Ledger *ledger.Service
	Bus    *events.Bus
	Writer *documents.Writer
}

func NewHarness() *Harness {
	store := ledgertest.NewStore()
	led := ledger.NewService(store, store)
	txm := &tx.MockManager{}
	txm.Join(store)
	nums := &numerator.MockGenerator{}
	bus := events.NewBus()
	return &Harness{
		Tx:     txm,
		Nums:   nums,
		Store:  store,
		Ledger: led,
		Bus:    bus,
		Writer: documents.NewWriter(txm, nums, led, bus),
	}
}
