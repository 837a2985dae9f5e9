package mapping

import (
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	"github.com/elaroma/cafeteria_pos/internal/models"
)

// ToModelProduct converts a domain Product to a model Product.
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		Code:          d.Code,
		Name:          d.Name,
		Cost:          d.Cost,
		SalePrice:     d.SalePrice,
		Stock:         d.Stock,
		Category:      d.Category,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainProduct converts a model Product to a domain Product.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		Code:      m.Code,
		Name:      m.Name,
		Cost:      m.Cost,
		SalePrice: m.SalePrice,
		Stock:     m.Stock,
		Category:  m.Category,
		Active:    m.Active,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products.
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
