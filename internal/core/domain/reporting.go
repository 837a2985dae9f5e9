package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport summarises the committed sales of a single calendar day.
type DailyReport struct {
	Date          time.Time       `json:"date"`
	SaleCount     int             `json:"saleCount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

// TopSellerRow is one product in the best-sellers ranking. Ties on quantity are
// broken by product code ascending.
type TopSellerRow struct {
	ProductCode  string          `json:"productCode"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// CashierReport aggregates committed sales per cashier.
type CashierReport struct {
	Cashier      string          `json:"cashier"`
	SaleCount    int             `json:"saleCount"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
}

// GeneralSummary covers the whole ledger.
type GeneralSummary struct {
	SaleCount     int             `json:"saleCount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
	HighestTicket decimal.Decimal `json:"highestTicket"`
	LowestTicket  decimal.Decimal `json:"lowestTicket"`
}

// Activity is one entry in the best-effort audit trail.
type Activity struct {
	Timestamp   time.Time `json:"timestamp"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
}
