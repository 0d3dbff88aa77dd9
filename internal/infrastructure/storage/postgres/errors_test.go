package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gescom/internal/core/apperror"
)

func TestTranslateConstraint_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "products_code_key",
		Detail:         "Key (code)=(P001) already exists.",
	}

	err := TranslateConstraint(fmt.Errorf("insert products: %w", pgErr), "products")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Equal(t, "code", appErr.Details["field"])
	assert.Equal(t, "P001", appErr.Details["value"])
	assert.ErrorIs(t, err, pgErr)
}

func TestTranslateConstraint_ForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "document_lines_product_id_fkey",
	}

	err := TranslateConstraint(pgErr, "document_lines")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.Equal(t, "document_lines_product_id_fkey", appErr.Details["constraint"])
}

func TestTranslateConstraint_PassThrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, TranslateConstraint(plain, "products"))

	// Other SQLSTATE classes are not the repository's business.
	serialization := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(serialization), TranslateConstraint(serialization, "products"))
}

func TestUniqueKeyParts(t *testing.T) {
	field, value := uniqueKeyParts("Key (number)=(FAC-2026-0001) already exists.")
	assert.Equal(t, "number", field)
	assert.Equal(t, "FAC-2026-0001", value)

	// Malformed detail falls back to a generic field name.
	field, value = uniqueKeyParts("duplicate key")
	assert.Equal(t, "value", field)
	assert.Empty(t, value)
}
