package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"gescom/internal/core/apperror"
)

// PostgreSQL error codes translated into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// TranslateConstraint maps constraint violations onto domain errors so the
// HTTP layer answers 409 instead of 500. Unique violations become
// CodeDuplicate with the offending column and value; foreign key violations
// become CodeConflict. Any other error passes through unchanged.
func TranslateConstraint(err error, table string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		field, value := uniqueKeyParts(pgErr.Detail)
		return apperror.NewDuplicate(table, field, value).WithCause(err)
	case codeForeignKeyViolation:
		return apperror.NewConflict(
			fmt.Sprintf("Operation on %s violates a relationship with another record", table)).
			WithDetail("entity", table).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}
	return err
}

// uniqueKeyParts extracts the column and value from a unique violation
// detail such as `Key (code)=(P001) already exists.`.
func uniqueKeyParts(detail string) (field, value string) {
	rest, ok := strings.CutPrefix(detail, "Key (")
	if !ok {
		return "value", ""
	}
	field, rest, ok = strings.Cut(rest, ")=(")
	if !ok {
		return "value", ""
	}
	value, _, _ = strings.Cut(rest, ")")
	return field, value
}
