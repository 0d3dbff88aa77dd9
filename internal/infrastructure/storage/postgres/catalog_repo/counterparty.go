package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"gescom/internal/core/entity"
	"gescom/internal/core/id"
	"gescom/internal/domain/catalogs/counterparty"
	"gescom/internal/infrastructure/storage/postgres"
)

// documentTables lists every table holding documents that reference a
// counterparty. HasOpenDocuments scans them all.
var documentTables = []string{
	"doc_sales",
	"doc_supplier_orders",
	"doc_purchase_orders",
	"doc_credit_notes",
	"doc_reception_notes",
	"doc_delivery_receipts",
}

// CounterpartyRepo implements counterparty.Repository.
type CounterpartyRepo struct {
	*BaseCatalogRepo[*counterparty.Counterparty]
}

var counterpartyColumns = postgres.ExtractDBColumns[counterparty.Counterparty]()

func NewCounterpartyRepo(txm *postgres.TxManager) *CounterpartyRepo {
	return &CounterpartyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"counterparties",
			counterpartyColumns,
			func() *counterparty.Counterparty { return &counterparty.Counterparty{} },
		),
	}
}

// Update writes the counterparty's editable fields.
func (r *CounterpartyRepo) Update(ctx context.Context, c *counterparty.Counterparty) error {
	return r.BaseCatalogRepo.Update(ctx, c)
}

// List retrieves counterparties with filtering.
func (r *CounterpartyRepo) List(ctx context.Context, filter counterparty.ListFilter) ([]*counterparty.Counterparty, error) {
	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	if filter.Kind != "" {
		q = q.Where(squirrel.Eq{"kind": filter.Kind})
	}

	return r.selectList(ctx, q, filter.Limit, filter.Offset)
}

// HasOpenDocuments reports whether any non-cancelled document in any family
// still references the counterparty.
func (r *CounterpartyRepo) HasOpenDocuments(ctx context.Context, counterpartyID id.ID) (bool, error) {
	querier := r.Querier(ctx)

	for _, table := range documentTables {
		q := r.Builder().
			Select("1").
			From(table).
			Where(squirrel.Eq{"counterparty_id": counterpartyID}).
			Where(squirrel.NotEq{"status": entity.StatusCancelled}).
			Limit(1)

		sql, args, err := q.ToSql()
		if err != nil {
			return false, fmt.Errorf("build query: %w", err)
		}

		var one int
		err = querier.QueryRow(ctx, sql, args...).Scan(&one)
		switch {
		case err == nil:
			return true, nil
		case isNoRows(err):
			continue
		default:
			return false, fmt.Errorf("check %s references: %w", table, err)
		}
	}
	return false, nil
}

var _ counterparty.Repository = (*CounterpartyRepo)(nil)
