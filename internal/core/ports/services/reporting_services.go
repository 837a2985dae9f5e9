package services

import (
	"context"
	"time"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// ReportingSvcFacade derives summaries from the sale ledger and the catalog.
// Read-only; consistency is whatever snapshot the underlying stores provide.
type ReportingSvcFacade interface {
	DailyTotals(ctx context.Context, date time.Time) (*domain.DailyReport, error)
	TopSellers(ctx context.Context, n int) ([]domain.TopSellerRow, error)
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)
	SalesByCashier(ctx context.Context) ([]domain.CashierReport, error)
	GeneralSummary(ctx context.Context) (*domain.GeneralSummary, error)
	RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error)
}
