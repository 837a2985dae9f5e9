package services

import (
	"context"
	"time"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// SaleCommitterSvc is the transaction coordinator: it turns open carts into
// immutable sales, or discards them, atomically with the stock decrement.
type SaleCommitterSvc interface {
	// CommitCart validates the cart against live stock, assigns the next sale
	// number, decrements stock for every line and persists the sale as one
	// unit. Any failure leaves stock and ledger exactly as they were.
	CommitCart(ctx context.Context, cartID string) (*domain.Sale, error)

	// CancelCart moves an open cart to Cancelled. No stock or ledger effect.
	CancelCart(ctx context.Context, cartID string) error
}

// SaleReaderSvc exposes the committed-sale ledger.
type SaleReaderSvc interface {
	GetSale(ctx context.Context, saleNumber int64) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error)
	ListSalesByDate(ctx context.Context, date time.Time) ([]domain.Sale, error)
	ListSalesByCashier(ctx context.Context, cashier string) ([]domain.Sale, error)
}

// SaleSvcFacade combines commit protocol and ledger reads.
type SaleSvcFacade interface {
	SaleCommitterSvc
	SaleReaderSvc
}
