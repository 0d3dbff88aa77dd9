// Package ledgertest provides in-memory implementations of the ledger
// repository and product gateway for unit tests, so document services can
// be exercised without a database.
package ledgertest

import (
	"context"
	"sort"
	"sync"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/core/tx"
	"gescom/internal/domain/ledger"
)

// Store is an in-memory movement journal plus product table. It implements
// tx.Transactional: joined to a tx.MockManager it snapshots its state on
// Begin and restores it on Rollback, so a failed service call leaves the
// journal and stock exactly where a real transaction would.
type Store struct {
	mu        sync.Mutex
	Movements []ledger.Movement
	Products  map[id.ID]*ledger.ProductInfo

	// FailCreate, when set, makes CreateMovements fail (fault injection).
	FailCreate error

	snapshots []storeSnapshot
}

type storeSnapshot struct {
	movements []ledger.Movement
	products  map[id.ID]*ledger.ProductInfo
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{Products: make(map[id.ID]*ledger.ProductInfo)}
}

// Begin implements tx.Transactional.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		movements: append([]ledger.Movement(nil), s.Movements...),
		products:  make(map[id.ID]*ledger.ProductInfo, len(s.Products)),
	}
	for pid, p := range s.Products {
		cp := *p
		snap.products[pid] = &cp
	}
	s.snapshots = append(s.snapshots, snap)
}

// Rollback implements tx.Transactional.
func (s *Store) Rollback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snapshots) == 0 {
		return
	}
	snap := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	s.Movements = snap.movements
	s.Products = snap.products
}

// AddProduct seeds a product and returns its id.
func (s *Store) AddProduct(name, category string, stock int64) id.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	productID := id.New()
	s.Products[productID] = &ledger.ProductInfo{ID: productID, Name: name, Category: category, Stock: stock}
	return productID
}

// Stock returns the current counter for a product.
func (s *Store) Stock(productID id.ID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Products[productID]; ok {
		return p.Stock
	}
	return 0
}

// MovementsFor returns all journal rows for a product, oldest first.
func (s *Store) MovementsFor(productID id.ID) []ledger.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Movement
	for _, m := range s.Movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// --- ledger.Repository ---

// CreateMovements implements ledger.Repository.
func (s *Store) CreateMovements(ctx context.Context, movements []ledger.Movement) error {
	if s.FailCreate != nil {
		return s.FailCreate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Movements = append(s.Movements, movements...)
	return nil
}

// GetBySource implements ledger.Repository.
func (s *Store) GetBySource(ctx context.Context, sourceType ledger.SourceType, sourceID id.ID) ([]ledger.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Movement
	for _, m := range s.Movements {
		if m.SourceType == sourceType && m.SourceID == sourceID {
			out = append(out, m)
		}
	}
	return out, nil
}

// List implements ledger.Repository.
func (s *Store) List(ctx context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Movement, 0, len(s.Movements))
	for _, m := range s.Movements {
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.SourceType != nil && m.SourceType != *filter.SourceType {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SumByProduct implements ledger.Repository.
func (s *Store) SumByProduct(ctx context.Context, productID id.ID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int64
	for _, m := range s.Movements {
		if m.ProductID == productID {
			sum += m.SignedQuantity()
		}
	}
	return sum, nil
}

// --- ledger.ProductGateway ---

// GetForUpdate implements ledger.ProductGateway.
func (s *Store) GetForUpdate(ctx context.Context, productID id.ID) (ledger.ProductInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Products[productID]
	if !ok {
		return ledger.ProductInfo{}, apperror.NewNotFound("product", productID.String())
	}
	return *p, nil
}

// AdjustStock implements ledger.ProductGateway.
func (s *Store) AdjustStock(ctx context.Context, productID id.ID, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.Stock += delta
	return nil
}

var (
	_ ledger.Repository     = (*Store)(nil)
	_ ledger.ProductGateway = (*Store)(nil)
	_ tx.Transactional      = (*Store)(nil)
)
