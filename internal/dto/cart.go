package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// CreateCartRequest opens a new draft sale for a cashier session.
type CreateCartRequest struct {
	Cashier string `json:"cashier" binding:"required"`
}

// AddItemRequest adds (or merges) a product line into a cart.
type AddItemRequest struct {
	ProductCode string `json:"productCode" binding:"required,productcode"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// SetQuantityRequest replaces a line's quantity. Zero or negative removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ApplyDiscountRequest sets the cart discount percentage.
type ApplyDiscountRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
}

// LineItemResponse defines the data returned for one cart or sale line.
type LineItemResponse struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Profit      decimal.Decimal `json:"profit"`
}

// CartResponse defines the data returned for a draft sale.
type CartResponse struct {
	CartID         string             `json:"cartID"`
	Cashier        string             `json:"cashier"`
	Status         string             `json:"status"`
	DiscountPct    decimal.Decimal    `json:"discountPct"`
	Items          []LineItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discountAmount"`
	Total          decimal.Decimal    `json:"total"`
	Profit         decimal.Decimal    `json:"profit"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO.
func ToLineItemResponse(li domain.LineItem) LineItemResponse {
	return LineItemResponse{
		ProductCode: li.ProductCode,
		ProductName: li.ProductName,
		UnitPrice:   li.UnitPrice,
		Quantity:    li.Quantity,
		Subtotal:    li.Subtotal(),
		Profit:      li.Profit(),
	}
}

// ToLineItemResponses converts a slice of domain.LineItem to []LineItemResponse.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i, li := range items {
		responses[i] = ToLineItemResponse(li)
	}
	return responses
}

// ToCartResponse converts a domain.Cart to CartResponse DTO.
func ToCartResponse(c *domain.Cart) CartResponse {
	return CartResponse{
		CartID:         c.CartID,
		Cashier:        c.Cashier,
		Status:         string(c.Status),
		DiscountPct:    c.DiscountPct,
		Items:          ToLineItemResponses(c.Items),
		Subtotal:       c.Subtotal(),
		DiscountAmount: c.DiscountAmount(),
		Total:          c.Total(),
		Profit:         c.Profit(),
		CreatedAt:      c.CreatedAt,
	}
}
