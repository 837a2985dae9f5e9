package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/utils/money"
)

// SaleStatus indicates the state of a draft or committed sale.
// A draft transitions Open -> Committed or Open -> Cancelled exactly once.
type SaleStatus string

const (
	SaleOpen      SaleStatus = "OPEN"
	SaleCommitted SaleStatus = "COMMITTED"
	SaleCancelled SaleStatus = "CANCELLED"
)

// LineItem references a product by code and snapshots unit price and cost at the
// moment it was added. The snapshot is never re-read from the live product, so a
// sale's recorded economics survive later catalog price changes.
type LineItem struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is round2(unit price x quantity).
func (li LineItem) Subtotal() decimal.Decimal {
	return money.Round2(li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))))
}

// Profit is round2((unit price - unit cost) x quantity).
func (li LineItem) Profit() decimal.Decimal {
	return money.Round2(li.UnitPrice.Sub(li.UnitCost).Mul(decimal.NewFromInt(int64(li.Quantity))))
}

// Cart is a mutable draft sale owned by a single cashier session. Line items are
// keyed by product code: at most one line per code, re-adding merges quantities.
type Cart struct {
	CartID      string          `json:"cartID"` // UUID
	Cashier     string          `json:"cashier"`
	Status      SaleStatus      `json:"status"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Items       []LineItem      `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ItemIndex returns the position of the line for the given product code, or -1.
func (c *Cart) ItemIndex(code string) int {
	for i, li := range c.Items {
		if li.ProductCode == code {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IsOpen reports whether the cart still accepts mutations.
func (c *Cart) IsOpen() bool {
	return c.Status == SaleOpen
}

// Subtotal is the sum of line subtotals before discount.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range c.Items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

// DiscountAmount is the monetary value the discount removes from the subtotal.
func (c *Cart) DiscountAmount() decimal.Decimal {
	return money.Round2(money.Pct(c.Subtotal(), c.DiscountPct))
}

// Total is round2(subtotal x (1 - discount/100)), recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	return money.Round2(c.Subtotal().Sub(money.Pct(c.Subtotal(), c.DiscountPct)))
}

// Profit is round2(sum of line profits x (1 - discount/100)). The discount scales
// the profit proportionally, mirroring how it scales the total.
func (c *Cart) Profit() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range c.Items {
		sum = sum.Add(li.Profit())
	}
	return money.Round2(sum.Sub(money.Pct(sum, c.DiscountPct)))
}

// CopyItems returns a defensive copy of the line items.
func (c *Cart) CopyItems() []LineItem {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return items
}
