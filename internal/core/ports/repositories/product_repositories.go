package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// ProductReader defines read operations for product data.
type ProductReader interface {
	// LoadProducts returns every product row, active or not. The catalog loads
	// this once at startup and is the authoritative view afterwards.
	LoadProducts(ctx context.Context) ([]domain.Product, error)

	// FindProductByCode retrieves a product regardless of its active flag.
	FindProductByCode(ctx context.Context, code string) (*domain.Product, error)
}

// ProductWriter defines write operations for product data.
type ProductWriter interface {
	// SaveProduct inserts a product or updates it in place (upsert by code).
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateStock sets the absolute stock level of a product.
	UpdateStock(ctx context.Context, code string, stock int) error

	// UpdatePrice sets the sale price of a product.
	UpdatePrice(ctx context.Context, code string, price decimal.Decimal) error

	// DeactivateProduct clears the active flag. The row is never deleted while
	// historical line items reference its code.
	DeactivateProduct(ctx context.Context, code string) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
