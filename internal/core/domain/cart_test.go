package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestLineItem_Subtotal(t *testing.T) {
	tests := []struct {
		name string
		item domain.LineItem
		want string
	}{
		{
			name: "single unit",
			item: domain.LineItem{UnitPrice: dec("25.00"), UnitCost: dec("5.00"), Quantity: 1},
			want: "25",
		},
		{
			name: "multiple units",
			item: domain.LineItem{UnitPrice: dec("20.00"), UnitCost: dec("5.00"), Quantity: 4},
			want: "80",
		},
		{
			name: "fractional price rounds to cents",
			item: domain.LineItem{UnitPrice: dec("3.333"), UnitCost: dec("1.00"), Quantity: 3},
			want: "10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(tt.item.Subtotal()), "got %s", tt.item.Subtotal())
		})
	}
}

func TestLineItem_Profit(t *testing.T) {
	item := domain.LineItem{UnitPrice: dec("20.00"), UnitCost: dec("5.00"), Quantity: 4}
	assert.True(t, dec("60.00").Equal(item.Profit()), "got %s", item.Profit())
}

func TestCart_Totals_WorkedExample(t *testing.T) {
	// Product C1: cost 5.00, price 20.00. Four units with a 10% discount.
	cart := &domain.Cart{
		CartID:  "cart-1",
		Cashier: "Ana",
		Status:  domain.SaleOpen,
		Items: []domain.LineItem{
			{ProductCode: "C1", ProductName: "Café Americano", UnitPrice: dec("20.00"), UnitCost: dec("5.00"), Quantity: 4},
		},
	}

	assert.True(t, dec("80.00").Equal(cart.Subtotal()))
	assert.True(t, dec("80.00").Equal(cart.Total()))
	assert.True(t, dec("60.00").Equal(cart.Profit()))

	cart.DiscountPct = dec("10")
	assert.True(t, dec("8.00").Equal(cart.DiscountAmount()), "discount amount, got %s", cart.DiscountAmount())
	assert.True(t, dec("72.00").Equal(cart.Total()), "total, got %s", cart.Total())
	assert.True(t, dec("54.00").Equal(cart.Profit()), "profit, got %s", cart.Profit())
}

func TestCart_EmptyCartHasZeroTotals(t *testing.T) {
	cart := &domain.Cart{CartID: "cart-1", Status: domain.SaleOpen}

	assert.True(t, cart.IsEmpty())
	assert.True(t, decimal.Zero.Equal(cart.Total()))
	assert.True(t, decimal.Zero.Equal(cart.Profit()))
}

func TestCart_ItemIndex(t *testing.T) {
	cart := &domain.Cart{
		Items: []domain.LineItem{
			{ProductCode: "A1", Quantity: 1},
			{ProductCode: "B2", Quantity: 2},
		},
	}

	assert.Equal(t, 0, cart.ItemIndex("A1"))
	assert.Equal(t, 1, cart.ItemIndex("B2"))
	assert.Equal(t, -1, cart.ItemIndex("C3"))
}

func TestCart_CopyItemsIsDefensive(t *testing.T) {
	cart := &domain.Cart{
		Items: []domain.LineItem{{ProductCode: "A1", Quantity: 1}},
	}

	items := cart.CopyItems()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestNewSaleFromCart_FreezesTotals(t *testing.T) {
	cart := &domain.Cart{
		CartID:      "cart-1",
		Cashier:     "Ana",
		Status:      domain.SaleOpen,
		DiscountPct: dec("10"),
		Items: []domain.LineItem{
			{ProductCode: "C1", UnitPrice: dec("20.00"), UnitCost: dec("5.00"), Quantity: 4},
		},
	}

	sale := domain.NewSaleFromCart(1001, cart, cart.CreatedAt)

	assert.Equal(t, int64(1001), sale.SaleNumber)
	assert.True(t, dec("72.00").Equal(sale.Total))
	assert.True(t, dec("54.00").Equal(sale.Profit))
	assert.Len(t, sale.Items, 1)

	// Mutating the cart afterwards must not leak into the frozen sale.
	cart.Items[0].Quantity = 10
	assert.Equal(t, 4, sale.Items[0].Quantity)
}

func TestProduct_UnitProfitAndInventoryValue(t *testing.T) {
	p := domain.Product{Code: "C1", Cost: dec("5.00"), SalePrice: dec("20.00"), Stock: 10}

	assert.True(t, dec("15.00").Equal(p.UnitProfit()))
	assert.True(t, dec("50.00").Equal(p.InventoryValue()))
}
