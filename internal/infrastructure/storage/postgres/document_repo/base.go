// Package document_repo provides PostgreSQL implementations for document
// repositories. One generic base serves all six families; each family
// contributes its header table, its lines table and its extra columns
// through the entity's "db" tags.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gescom/internal/core/apperror"
	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/domain/documents"
	"gescom/internal/infrastructure/storage/postgres"
)

var lineColumns = postgres.ExtractDBColumns[entity.DocumentLine]()

// BaseDocumentRepo provides CRUD for one document family. It implements
// documents.Repository[T].
type BaseDocumentRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	linesTable string
	selectCols []string
	newFn      func() T
}

func NewBaseDocumentRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	linesTable string,
	newFn func() T,
) *BaseDocumentRepo[T] {
	return &BaseDocumentRepo[T]{
		txm:        txm,
		tableName:  tableName,
		linesTable: linesTable,
		selectCols: postgres.ExtractDBColumns[T](),
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder.
func (r *BaseDocumentRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BaseDocumentRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts the document header.
func (r *BaseDocumentRepo[T]) Create(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateConstraint(fmt.Errorf("insert %s: %w", r.tableName, err), r.tableName)
	}
	return nil
}

// Update writes the header with optimistic locking.
func (r *BaseDocumentRepo[T]) Update(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		// id/number are immutable, version and updated_at are managed here
		if col == "id" || col == "number" || col == "created_at" || col == "version" || col == "updated_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateConstraint(fmt.Errorf("update %s: %w", r.tableName, err), r.tableName)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}
	return nil
}

func (r *BaseDocumentRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves the document header.
func (r *BaseDocumentRepo[T]) GetByID(ctx context.Context, docID id.ID) (T, error) {
	return r.get(ctx, docID, false)
}

// GetForUpdate retrieves the header under a row lock, serializing
// concurrent edits, status changes and deletes of the same document.
func (r *BaseDocumentRepo[T]) GetForUpdate(ctx context.Context, docID id.ID) (T, error) {
	return r.get(ctx, docID, true)
}

func (r *BaseDocumentRepo[T]) get(ctx context.Context, docID id.ID, forUpdate bool) (T, error) {
	doc := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": docID}).
		Limit(1)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return doc, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return doc, apperror.NewNotFound(r.tableName, docID.String())
		}
		return doc, fmt.Errorf("get by id: %w", err)
	}
	return doc, nil
}

// Delete removes the header and its lines. Stock compensation is the
// caller's responsibility.
func (r *BaseDocumentRepo[T]) Delete(ctx context.Context, docID id.ID) error {
	querier := r.querier(ctx)

	delLines := r.Builder().
		Delete(r.linesTable).
		Where(squirrel.Eq{"document_id": docID})
	sql, args, err := delLines.ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete %s: %w", r.linesTable, err)
	}

	delDoc := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": docID})
	sql, args, err = delDoc.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, docID.String())
	}
	return nil
}

// List retrieves document headers matching the filter, newest first.
func (r *BaseDocumentRepo[T]) List(ctx context.Context, filter documents.ListFilter) ([]T, error) {
	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"counterparty_name": pattern},
		})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if !id.IsNil(filter.CounterpartyID) {
		q = q.Where(squirrel.Eq{"counterparty_id": filter.CounterpartyID})
	}
	if !filter.DateFrom.IsZero() {
		q = q.Where(squirrel.GtOrEq{"date": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		q = q.Where(squirrel.LtOrEq{"date": filter.DateTo})
	}

	q = q.OrderBy("date DESC", "number DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.tableName, err)
	}
	return items, nil
}

// GetLines retrieves the document's lines ordered by line number.
func (r *BaseDocumentRepo[T]) GetLines(ctx context.Context, docID id.ID) ([]entity.DocumentLine, error) {
	q := r.Builder().
		Select(lineColumns...).
		From(r.linesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []entity.DocumentLine
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

// ReplaceLines swaps the document's full line set: delete then insert.
// Edits are whole-replace, never partial patch.
func (r *BaseDocumentRepo[T]) ReplaceLines(ctx context.Context, docID id.ID, lines []entity.DocumentLine) error {
	querier := r.querier(ctx)

	del := r.Builder().
		Delete(r.linesTable).
		Where(squirrel.Eq{"document_id": docID})
	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert(r.linesTable).
		Columns(append([]string{"document_id"}, lineColumns...)...)
	for _, line := range lines {
		data := postgres.StructToMap(line)
		values := make([]any, 0, len(lineColumns)+1)
		values = append(values, docID)
		for _, col := range lineColumns {
			values = append(values, data[col])
		}
		ins = ins.Values(values...)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateConstraint(fmt.Errorf("insert lines: %w", err), r.linesTable)
	}
	return nil
}
