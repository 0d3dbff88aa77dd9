package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Category string `db:"category" json:"category"`
	Ignored  string `db:"-" json:"ignored"`
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "version", "created_at", "updated_at", "code", "name", "category"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_EmbeddedStructs(t *testing.T) {
	now := time.Now().UTC()
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{
				ID:        id.New(),
				Version:   5,
				CreatedAt: now,
				UpdatedAt: now,
			},
			Code: "PROD-001",
			Name: "Clavier mécanique",
		},
		Category: "hardware",
		Ignored:  "not persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "PROD-001", m["code"])
	assert.Equal(t, "Clavier mécanique", m["name"])
	assert.Equal(t, "hardware", m["category"])
	_, ok := m["-"]
	assert.False(t, ok)
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Category: "service"}
	m := StructToMap(cat)
	assert.Equal(t, "service", m["category"])
}
