package domain

import (
	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/utils/money"
)

// Product is a stock-bearing catalog entry. The code is its immutable identity;
// stock and monetary fields are never negative. An inactive product is excluded
// from catalog queries and cart additions but retained for historical line items.
type Product struct {
	Code      string          `json:"code"` // Primary Key, immutable
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
	Active    bool            `json:"active"`
	AuditFields
}

// UnitProfit is the margin earned on a single unit at the current price.
func (p Product) UnitProfit() decimal.Decimal {
	return money.Round2(p.SalePrice.Sub(p.Cost))
}

// InventoryValue is what the current stock is worth at cost.
func (p Product) InventoryValue() decimal.Decimal {
	return money.Round2(p.Cost.Mul(decimal.NewFromInt(int64(p.Stock))))
}
