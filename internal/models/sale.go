package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale mirrors the sales table. Rows are append-only.
type Sale struct {
	SaleNumber  int64
	Timestamp   time.Time
	Cashier     string
	DiscountPct decimal.Decimal
	Total       decimal.Decimal
	Profit      decimal.Decimal
}

// SaleLineItem mirrors the sale_line_items table. Price and cost are the values
// snapshotted at add-time, not the product's current values.
type SaleLineItem struct {
	SaleNumber  int64
	ProductCode string
	ProductName string
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal
	Quantity    int
}

// Activity mirrors the activity_log table.
type Activity struct {
	Timestamp   time.Time
	Kind        string
	Description string
	Actor       string
}
