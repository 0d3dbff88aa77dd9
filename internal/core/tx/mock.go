package tx

import "context"

// Transactional is implemented by in-memory fakes that can snapshot their
// state when a mock transaction begins and restore it when it rolls back.
type Transactional interface {
	Begin()
	Rollback()
}

// MockManager is a pass-through Manager for unit tests.
// It executes fn directly and records begin/rollback counts so tests can
// assert transactional behavior without a database. Fakes registered with
// Join get snapshot/restore calls, so a failing fn leaves them untouched
// the way a real rollback would.
type MockManager struct {
	// FailBegin, when set, is returned instead of running fn.
	FailBegin error

	Began      int
	RolledBack int
	Committed  int

	joined []Transactional
}

// Join registers fakes whose state follows the mock transaction boundary.
func (m *MockManager) Join(fakes ...Transactional) {
	m.joined = append(m.joined, fakes...)
}

// RunInTransaction implements Manager.
func (m *MockManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.FailBegin != nil {
		return m.FailBegin
	}
	m.Began++
	for _, f := range m.joined {
		f.Begin()
	}
	if err := fn(ctx); err != nil {
		m.RolledBack++
		for _, f := range m.joined {
			f.Rollback()
		}
		return err
	}
	m.Committed++
	return nil
}

// ReadOnly implements ReadOnlyManager.
func (m *MockManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransaction(ctx, fn)
}

var _ ReadOnlyManager = (*MockManager)(nil)
