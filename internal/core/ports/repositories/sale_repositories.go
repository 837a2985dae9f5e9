package repositories

import (
	"context"
	"time"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// SaleReader defines read operations over the committed-sale ledger.
type SaleReader interface {
	// FindSaleByNumber retrieves a committed sale with its line items.
	FindSaleByNumber(ctx context.Context, saleNumber int64) (*domain.Sale, error)

	// ListSalesByDate returns the committed sales of one calendar day, newest first.
	ListSalesByDate(ctx context.Context, date time.Time) ([]domain.Sale, error)

	// ListSales returns committed sales newest first using token-based pagination.
	// It returns the sales, a token for the next page, and an error.
	ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error)

	// ListSalesByCashier returns the committed sales of one cashier, newest first.
	ListSalesByCashier(ctx context.Context, cashier string) ([]domain.Sale, error)

	// FindLineItemsBySale retrieves the frozen line items of a sale.
	FindLineItemsBySale(ctx context.Context, saleNumber int64) ([]domain.LineItem, error)
}

// SaleWriter defines the durable side of the commit protocol.
type SaleWriter interface {
	// NextSaleNumber durably increments and returns the sale-number counter.
	// It commits on its own: a number handed out here is never reissued, even
	// if the subsequent SaveSale fails and the number ends up retired.
	NextSaleNumber(ctx context.Context) (int64, error)

	// SaveSale persists the sale header, its line items, and the stock
	// decrements for every referenced product in a single database
	// transaction. Either all of it lands or none of it does.
	// A duplicate sale number surfaces as apperrors.ErrDuplicate.
	SaveSale(ctx context.Context, sale domain.Sale, stockDecrements map[string]int) error
}

// SaleRepositoryFacade combines all sale-ledger repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}

// SaleRepositoryWithTx extends SaleRepositoryFacade with transaction capabilities.
type SaleRepositoryWithTx interface {
	SaleRepositoryFacade
	TransactionManager
}
