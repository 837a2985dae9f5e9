package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a repository for aggregate queries over the ledger.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetDailyTotals returns count, revenue and profit sums for one calendar day.
func (r *PgxReportingRepository) GetDailyTotals(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(profit), 0)
		FROM sales
		WHERE sold_at >= $1 AND sold_at < $2;
	`
	report := &domain.DailyReport{Date: dayStart}
	err := r.Pool.QueryRow(ctx, query, dayStart, dayEnd).Scan(
		&report.SaleCount,
		&report.TotalRevenue,
		&report.TotalProfit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily totals: %w", err)
	}

	if report.SaleCount > 0 {
		report.AverageTicket = report.TotalRevenue.Div(decimal.NewFromInt(int64(report.SaleCount))).Round(2)
	} else {
		report.AverageTicket = decimal.Zero
	}
	return report, nil
}

// GetTopSellers returns the n best-selling products by total quantity sold,
// ties broken by product code ascending.
func (r *PgxReportingRepository) GetTopSellers(ctx context.Context, n int) ([]domain.TopSellerRow, error) {
	query := `
		SELECT product_code,
		       MAX(product_name),
		       SUM(quantity)::int,
		       COALESCE(SUM(unit_price * quantity), 0),
		       COALESCE(SUM((unit_price - unit_cost) * quantity), 0)
		FROM sale_line_items
		GROUP BY product_code
		ORDER BY SUM(quantity) DESC, product_code ASC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top sellers: %w", err)
	}
	defer rows.Close()

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TopSellerRow, error) {
		var tr domain.TopSellerRow
		err := row.Scan(&tr.ProductCode, &tr.ProductName, &tr.QuantitySold, &tr.Revenue, &tr.Profit)
		return tr, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TopSellerRow{}, nil
		}
		return nil, fmt.Errorf("failed to scan top sellers: %w", err)
	}
	return result, nil
}

// GetSalesByCashier aggregates committed sales per cashier.
func (r *PgxReportingRepository) GetSalesByCashier(ctx context.Context) ([]domain.CashierReport, error) {
	query := `
		SELECT cashier, COUNT(*)::int, COALESCE(SUM(total), 0), COALESCE(SUM(profit), 0)
		FROM sales
		GROUP BY cashier
		ORDER BY SUM(total) DESC, cashier ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by cashier: %w", err)
	}
	defer rows.Close()

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CashierReport, error) {
		var cr domain.CashierReport
		err := row.Scan(&cr.Cashier, &cr.SaleCount, &cr.TotalRevenue, &cr.TotalProfit)
		return cr, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CashierReport{}, nil
		}
		return nil, fmt.Errorf("failed to scan sales by cashier: %w", err)
	}
	return result, nil
}

// GetGeneralSummary aggregates the whole ledger.
func (r *PgxReportingRepository) GetGeneralSummary(ctx context.Context) (*domain.GeneralSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total), 0),
		       COALESCE(SUM(profit), 0),
		       COALESCE(MAX(total), 0),
		       COALESCE(MIN(total), 0)
		FROM sales;
	`
	summary := &domain.GeneralSummary{}
	err := r.Pool.QueryRow(ctx, query).Scan(
		&summary.SaleCount,
		&summary.TotalRevenue,
		&summary.TotalProfit,
		&summary.HighestTicket,
		&summary.LowestTicket,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger summary: %w", err)
	}

	if summary.SaleCount > 0 {
		summary.AverageTicket = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.SaleCount))).Round(2)
	} else {
		summary.AverageTicket = decimal.Zero
	}
	return summary, nil
}
