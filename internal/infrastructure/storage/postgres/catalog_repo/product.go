package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gescom/internal/core/apperror"
	"gescom/internal/core/id"
	"gescom/internal/domain/catalogs/product"
	"gescom/internal/domain/ledger"
	"gescom/internal/infrastructure/storage/postgres"
)

// ProductRepo implements product.Repository and ledger.ProductGateway.
// Both roles share the same table; the gateway methods are the only code
// in the repository layer allowed to write the stock column.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var productColumns = postgres.ExtractDBColumns[product.Product]()

func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"products",
			productColumns,
			func() *product.Product { return &product.Product{} },
		),
	}
}

// Update writes the product's editable fields. The stock column is fenced
// off: it belongs to the ledger's gateway.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	return r.BaseCatalogRepo.Update(ctx, p, "stock")
}

// List retrieves products with filtering.
func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}

	return r.selectList(ctx, q, filter.Limit, filter.Offset)
}

// GetForUpdate implements ledger.ProductGateway: it loads the stock row
// under a row lock so the availability check and the counter update are
// atomic against concurrent writers.
func (r *ProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (ledger.ProductInfo, error) {
	q := r.Builder().
		Select("id", "name", "category", "stock").
		From(r.tableName).
		Where(squirrel.Eq{"id": productID}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return ledger.ProductInfo{}, fmt.Errorf("build query: %w", err)
	}

	var info ledger.ProductInfo
	if err := pgxscan.Get(ctx, r.Querier(ctx), &info, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ledger.ProductInfo{}, apperror.NewNotFound("products", productID.String())
		}
		return ledger.ProductInfo{}, fmt.Errorf("lock product: %w", err)
	}
	return info, nil
}

// AdjustStock implements ledger.ProductGateway.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int64) error {
	q := r.Builder().
		Update(r.tableName).
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("products", productID.String())
	}
	return nil
}

var (
	_ product.Repository    = (*ProductRepo)(nil)
	_ ledger.ProductGateway = (*ProductRepo)(nil)
)
