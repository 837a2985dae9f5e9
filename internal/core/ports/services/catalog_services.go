package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	"github.com/elaroma/cafeteria_pos/internal/dto"
)

// CatalogReaderSvc defines read operations over the live product catalog.
// Only active products are visible through these calls.
type CatalogReaderSvc interface {
	// GetProduct returns the product if present and active. Absent and inactive
	// products are indistinguishable to callers: both are ErrProductNotFound.
	GetProduct(ctx context.Context, code string) (*domain.Product, error)

	// Reserve checks stock(code) >= qty without mutating anything. Used for
	// pre-validation during cart edits; the commit-time check is authoritative.
	Reserve(ctx context.Context, code string, qty int) error

	// ListProducts returns active products ordered by category then name.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// ListProductsByCategory filters active products by exact category.
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// SearchProductsByName matches active products by case-insensitive substring.
	SearchProductsByName(ctx context.Context, name string) ([]domain.Product, error)

	// LowStock returns active products with stock <= threshold, ascending by stock.
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)

	// InventoryValue sums stock x cost over the active catalog.
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
}

// CatalogWriterSvc defines administrative mutations of the catalog.
type CatalogWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, actor string) (*domain.Product, error)
	SetPrice(ctx context.Context, code string, price decimal.Decimal, actor string) (*domain.Product, error)
	SetStock(ctx context.Context, code string, stock int, actor string) (*domain.Product, error)
	AddStock(ctx context.Context, code string, qty int, actor string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, code string, actor string) error
}

// StockGateSvc is the critical-section interface the transaction coordinator
// uses at commit time. DecrementAll validates and decrements every line under
// one lock, or fails having changed nothing; RestoreAll compensates after a
// failed durable write.
type StockGateSvc interface {
	DecrementAll(ctx context.Context, decrements map[string]int) error
	RestoreAll(ctx context.Context, decrements map[string]int)
}

// CatalogLoaderSvc synchronizes the in-memory catalog with the durable store.
type CatalogLoaderSvc interface {
	// LoadFromStore replaces the in-memory product set with the persisted one.
	// Called once at startup before the engine accepts requests.
	LoadFromStore(ctx context.Context) error
}

// CatalogSvcFacade combines all catalog interfaces.
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
	CatalogLoaderSvc
	StockGateSvc
}
