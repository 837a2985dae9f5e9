package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// SaleResponse defines the data returned for a committed sale.
type SaleResponse struct {
	SaleNumber  int64              `json:"saleNumber"`
	Timestamp   time.Time          `json:"timestamp"`
	Cashier     string             `json:"cashier"`
	DiscountPct decimal.Decimal    `json:"discountPct"`
	Total       decimal.Decimal    `json:"total"`
	Profit      decimal.Decimal    `json:"profit"`
	Items       []LineItemResponse `json:"items,omitempty"`
}

// ListSalesResponse wraps a page of sales with the cursor for the next page.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleNumber:  s.SaleNumber,
		Timestamp:   s.Timestamp,
		Cashier:     s.Cashier,
		DiscountPct: s.DiscountPct,
		Total:       s.Total,
		Profit:      s.Profit,
		Items:       ToLineItemResponses(s.Items),
	}
}

// ToSaleResponses converts a slice of domain.Sale to []SaleResponse.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
