package repositories

import (
	"context"
	"time"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries over the sale ledger.
type ReportingRepository interface {
	// GetDailyTotals returns count, revenue and profit sums for one calendar day.
	GetDailyTotals(ctx context.Context, date time.Time) (*domain.DailyReport, error)

	// GetTopSellers returns the n best-selling products by total quantity,
	// ties broken by product code ascending.
	GetTopSellers(ctx context.Context, n int) ([]domain.TopSellerRow, error)

	// GetSalesByCashier aggregates committed sales per cashier.
	GetSalesByCashier(ctx context.Context) ([]domain.CashierReport, error)

	// GetGeneralSummary aggregates the whole ledger.
	GetGeneralSummary(ctx context.Context) (*domain.GeneralSummary, error)
}
