package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable committed sale. The number is unique and strictly
// increasing, assigned only at commit. Line items are frozen snapshots.
type Sale struct {
	SaleNumber  int64           `json:"saleNumber"`
	Timestamp   time.Time       `json:"timestamp"`
	Cashier     string          `json:"cashier"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Total       decimal.Decimal `json:"total"`
	Profit      decimal.Decimal `json:"profit"`
	Items       []LineItem      `json:"items"`
}

// NewSaleFromCart freezes an open cart into a Sale under the given number.
// Totals are computed once here and never recomputed afterwards.
func NewSaleFromCart(number int64, cart *Cart, at time.Time) Sale {
	return Sale{
		SaleNumber:  number,
		Timestamp:   at,
		Cashier:     cart.Cashier,
		DiscountPct: cart.DiscountPct,
		Total:       cart.Total(),
		Profit:      cart.Profit(),
		Items:       cart.CopyItems(),
	}
}
