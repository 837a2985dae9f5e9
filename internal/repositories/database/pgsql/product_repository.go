package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	"github.com/elaroma/cafeteria_pos/internal/models"
	"github.com/elaroma/cafeteria_pos/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// LoadProducts retrieves every product row, active or not.
func (r *PgxProductRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT code, name, cost, sale_price, stock, category, active, created_at, last_updated_at, last_updated_by
		FROM products
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	modelProducts, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}

	return mapping.ToDomainProductSlice(modelProducts), nil
}

// FindProductByCode retrieves a product regardless of its active flag.
func (r *PgxProductRepository) FindProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	query := `
		SELECT code, name, cost, sale_price, stock, category, active, created_at, last_updated_at, last_updated_by
		FROM products
		WHERE code = $1;
	`
	var modelProduct models.Product
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&modelProduct.Code,
		&modelProduct.Name,
		&modelProduct.Cost,
		&modelProduct.SalePrice,
		&modelProduct.Stock,
		&modelProduct.Category,
		&modelProduct.Active,
		&modelProduct.CreatedAt,
		&modelProduct.LastUpdatedAt,
		&modelProduct.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by code %s: %w", code, err)
	}

	domainProduct := mapping.ToDomainProduct(modelProduct)
	return &domainProduct, nil
}

// SaveProduct inserts a product or updates it in place (upsert by code).
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	modelProduct := mapping.ToModelProduct(product)

	query := `
		INSERT INTO products (code, name, cost, sale_price, stock, category, active, created_at, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			cost = EXCLUDED.cost,
			sale_price = EXCLUDED.sale_price,
			stock = EXCLUDED.stock,
			category = EXCLUDED.category,
			active = EXCLUDED.active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelProduct.Code,
		modelProduct.Name,
		modelProduct.Cost,
		modelProduct.SalePrice,
		modelProduct.Stock,
		modelProduct.Category,
		modelProduct.Active,
		modelProduct.CreatedAt,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", modelProduct.Code, err)
	}
	return nil
}

// UpdateStock sets the absolute stock level of a product.
func (r *PgxProductRepository) UpdateStock(ctx context.Context, code string, stock int) error {
	query := `UPDATE products SET stock = $1, last_updated_at = now() WHERE code = $2;`
	tag, err := r.Pool.Exec(ctx, query, stock, code)
	if err != nil {
		return fmt.Errorf("failed to update stock for product %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePrice sets the sale price of a product.
func (r *PgxProductRepository) UpdatePrice(ctx context.Context, code string, price decimal.Decimal) error {
	query := `UPDATE products SET sale_price = $1, last_updated_at = now() WHERE code = $2;`
	tag, err := r.Pool.Exec(ctx, query, price, code)
	if err != nil {
		return fmt.Errorf("failed to update price for product %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateProduct clears the active flag. The row is never deleted while
// historical line items reference its code.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, code string) error {
	query := `UPDATE products SET active = FALSE, last_updated_at = now() WHERE code = $1;`
	tag, err := r.Pool.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to deactivate product %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.Code,
		&p.Name,
		&p.Cost,
		&p.SalePrice,
		&p.Stock,
		&p.Category,
		&p.Active,
		&p.CreatedAt,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}
