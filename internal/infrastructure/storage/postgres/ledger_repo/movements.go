// Package ledger_repo provides the PostgreSQL implementation of the stock
// movement journal.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gescom/internal/core/id"
	"gescom/internal/domain/ledger"
	"gescom/internal/infrastructure/storage/postgres"
)

const movementsTable = "stock_movements"

var movementColumns = postgres.ExtractDBColumns[ledger.Movement]()

// MovementRepo implements ledger.Repository. Rows are append-only: there
// is no UPDATE or DELETE here by design of the table.
type MovementRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

func NewMovementRepo(txm *postgres.TxManager) *MovementRepo {
	return &MovementRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMovements appends movement rows, using COPY when inside a
// transaction. The ledger service always calls this inside one.
func (r *MovementRepo) CreateMovements(ctx context.Context, movements []ledger.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	if tx := r.txm.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txm)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.ID, m.ProductID, m.ProductName,
				m.Quantity, m.Direction,
				m.SourceType, m.SourceID,
				m.Reference, m.Reason, m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, movementsTable, movementColumns, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(movementsTable).Columns(movementColumns...)
	for _, m := range movements {
		q = q.Values(
			m.ID, m.ProductID, m.ProductName,
			m.Quantity, m.Direction,
			m.SourceType, m.SourceID,
			m.Reference, m.Reason, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}
	return nil
}

func (r *MovementRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select(movementColumns...).
		From(movementsTable)
}

// GetBySource retrieves the movements tied to one source document, in
// insertion order.
func (r *MovementRepo) GetBySource(ctx context.Context, sourceType ledger.SourceType, sourceID id.ID) ([]ledger.Movement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"source_type": sourceType}).
		Where(squirrel.Eq{"source_id": sourceID}).
		OrderBy("created_at ASC", "id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []ledger.Movement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("get by source: %w", err)
	}
	return movements, nil
}

// List retrieves journal movements, newest first.
func (r *MovementRepo) List(ctx context.Context, filter ledger.MovementFilter) ([]ledger.Movement, error) {
	q := r.baseSelect()

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.SourceType != nil {
		q = q.Where(squirrel.Eq{"source_type": *filter.SourceType})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}

	q = q.OrderBy("created_at DESC", "id DESC")
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

	var movements []ledger.Movement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}

// SumByProduct returns the signed movement sum for one product.
func (r *MovementRepo) SumByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder.
		Select("COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END), 0)").
		From(movementsTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var sum int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

var _ ledger.Repository = (*MovementRepo)(nil)
