package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	activityRepo := newPgxActivityRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:   productRepo,
		SaleRepo:      saleRepo,
		ReportingRepo: reportingRepo,
		ActivityRepo:  activityRepo,
	}
}
