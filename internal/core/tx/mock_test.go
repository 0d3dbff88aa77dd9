package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journalFake struct {
	rows  []string
	saved []string
}

func (f *journalFake) Begin()    { f.saved = append([]string(nil), f.rows...) }
func (f *journalFake) Rollback() { f.rows = f.saved }

func TestMockManager_RollbackRestoresJoinedFakes(t *testing.T) {
	m := &MockManager{}
	fake := &journalFake{}
	m.Join(fake)

	err := m.RunInTransaction(context.Background(), func(ctx context.Context) error {
		fake.rows = append(fake.rows, "orphan")
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, m.RolledBack)
	assert.Empty(t, fake.rows, "rollback restores the pre-transaction state")
}

func TestMockManager_CommitKeepsJoinedFakes(t *testing.T) {
	m := &MockManager{}
	fake := &journalFake{}
	m.Join(fake)

	err := m.RunInTransaction(context.Background(), func(ctx context.Context) error {
		fake.rows = append(fake.rows, "kept")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, m.Committed)
	assert.Equal(t, []string{"kept"}, fake.rows)
}

func TestMockManager_FailBeginShortCircuits(t *testing.T) {
	m := &MockManager{FailBegin: errors.New("pool closed")}
	fake := &journalFake{}
	m.Join(fake)

	ran := false
	err := m.RunInTransaction(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, ran)
	assert.Equal(t, 0, m.Began)
}
