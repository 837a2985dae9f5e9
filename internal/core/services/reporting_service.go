package services

import (
	"context"
	"fmt"
	"time"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
)

// reportingService answers aggregate queries. Ledger aggregates come from SQL
// over the sales tables; inventory reports come from the live catalog.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	catalog       portssvc.CatalogReaderSvc
	activityRepo  portsrepo.ActivityRepository
}

// NewReportingService creates a new reporting service. activityRepo may be nil
// when the audit trail is disabled.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, catalog portssvc.CatalogReaderSvc, activityRepo portsrepo.ActivityRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		catalog:       catalog,
		activityRepo:  activityRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DailyTotals summarises the committed sales of one calendar day.
func (s *reportingService) DailyTotals(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	report, err := s.reportingRepo.GetDailyTotals(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily totals: %w", err)
	}
	return report, nil
}

// TopSellers returns the n best-selling products by total quantity sold.
func (s *reportingService) TopSellers(ctx context.Context, n int) ([]domain.TopSellerRow, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: top seller count must be positive", apperrors.ErrValidation)
	}
	rows, err := s.reportingRepo.GetTopSellers(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get top sellers: %w", err)
	}
	return rows, nil
}

// LowStock returns active products at or below the threshold, lowest stock first.
func (s *reportingService) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold cannot be negative", apperrors.ErrValidation)
	}
	return s.catalog.LowStock(ctx, threshold)
}

// SalesByCashier aggregates committed sales per cashier.
func (s *reportingService) SalesByCashier(ctx context.Context) ([]domain.CashierReport, error) {
	reports, err := s.reportingRepo.GetSalesByCashier(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by cashier: %w", err)
	}
	return reports, nil
}

// GeneralSummary aggregates the whole ledger.
func (s *reportingService) GeneralSummary(ctx context.Context) (*domain.GeneralSummary, error) {
	summary, err := s.reportingRepo.GetGeneralSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get general summary: %w", err)
	}
	return summary, nil
}

// RecentActivities returns the newest audit-trail entries.
func (s *reportingService) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}
	if s.activityRepo == nil {
		return []domain.Activity{}, nil
	}
	activities, err := s.activityRepo.ListRecentActivities(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activities: %w", err)
	}
	return activities, nil
}
