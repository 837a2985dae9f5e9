package mapping

import (
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	"github.com/elaroma/cafeteria_pos/internal/models"
)

// ToModelSale converts a domain Sale header to a model Sale.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleNumber:  d.SaleNumber,
		Timestamp:   d.Timestamp,
		Cashier:     d.Cashier,
		DiscountPct: d.DiscountPct,
		Total:       d.Total,
		Profit:      d.Profit,
	}
}

// ToDomainSale converts a model Sale header to a domain Sale without items.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleNumber:  m.SaleNumber,
		Timestamp:   m.Timestamp,
		Cashier:     m.Cashier,
		DiscountPct: m.DiscountPct,
		Total:       m.Total,
		Profit:      m.Profit,
	}
}

// ToModelLineItems converts a sale's line items to model rows.
func ToModelLineItems(saleNumber int64, items []domain.LineItem) []models.SaleLineItem {
	ms := make([]models.SaleLineItem, len(items))
	for i, li := range items {
		ms[i] = models.SaleLineItem{
			SaleNumber:  saleNumber,
			ProductCode: li.ProductCode,
			ProductName: li.ProductName,
			UnitPrice:   li.UnitPrice,
			UnitCost:    li.UnitCost,
			Quantity:    li.Quantity,
		}
	}
	return ms
}

// ToDomainLineItem converts a model line item row to a domain LineItem.
func ToDomainLineItem(m models.SaleLineItem) domain.LineItem {
	return domain.LineItem{
		ProductCode: m.ProductCode,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		UnitCost:    m.UnitCost,
		Quantity:    m.Quantity,
	}
}
