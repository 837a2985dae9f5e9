package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the products table.
type Product struct {
	Code          string
	Name          string
	Cost          decimal.Decimal
	SalePrice     decimal.Decimal
	Stock         int
	Category      string
	Active        bool
	CreatedAt     time.Time
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
