package catalog_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/id"
)

func TestBuildUpdate_StampsVersionAndUpdatedAt(t *testing.T) {
	repo := NewBaseCatalogRepo(nil, "products",
		[]string{"id", "version", "created_at", "updated_at", "code", "name"},
		func() any { return nil })

	stale := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entityID := id.New()
	data := map[string]any{
		"id":         entityID,
		"version":    3,
		"created_at": stale,
		"updated_at": stale,
		"code":       "P001",
		"name":       "Clavier",
	}

	sql, args, err := repo.buildUpdate(data, entityID, 3, nil).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "version = version + 1")
	assert.Contains(t, sql, "updated_at = NOW()")
	assert.NotContains(t, sql, "created_at")

	// The struct's stale timestamp must never travel as a bind parameter.
	assert.NotContains(t, args, stale)
	assert.Contains(t, args, "P001")
}

func TestBuildUpdate_SkipColsAreFenced(t *testing.T) {
	repo := NewBaseCatalogRepo(nil, "products",
		[]string{"id", "version", "updated_at", "code", "stock"},
		func() any { return nil })

	entityID := id.New()
	data := map[string]any{
		"id":      entityID,
		"version": 1,
		"code":    "P001",
		"stock":   int64(99),
	}

	sql, args, err := repo.buildUpdate(data, entityID, 1, []string{"stock"}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "stock")
	assert.NotContains(t, args, int64(99))
}
