package services

import (
	portsrepo "github.com/elaroma/cafeteria_pos/internal/core/ports/repositories"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
	"github.com/elaroma/cafeteria_pos/internal/platform/config"
)

// NewServiceContainer wires the service graph: catalog first, carts on top of
// its reader, the sale coordinator over carts plus the stock gate, reporting
// over the ledger aggregates and the catalog.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	catalog := NewCatalogService(repos.ProductRepo, WithCatalogActivityLog(repos.ActivityRepo))
	carts := NewCartService(catalog, cfg.MaxDiscountPct)
	sales := NewSaleService(repos.SaleRepo, carts, catalog, WithSaleActivityLog(repos.ActivityRepo))
	reporting := NewReportingService(repos.ReportingRepo, catalog, repos.ActivityRepo)

	return &portssvc.ServiceContainer{
		Catalog:   catalog,
		Cart:      carts,
		Sale:      sales,
		Reporting: reporting,
	}
}
