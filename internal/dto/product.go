package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// CreateProductRequest defines the payload for registering a catalog product.
// Cost, sale price and stock must be non-negative; the service enforces it.
type CreateProductRequest struct {
	Code      string          `json:"code" binding:"required,productcode"`
	Name      string          `json:"name" binding:"required"`
	Cost      decimal.Decimal `json:"cost"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
}

// UpdatePriceRequest defines the payload for an administrative price change.
type UpdatePriceRequest struct {
	SalePrice decimal.Decimal `json:"salePrice"`
}

// UpdateStockRequest defines the payload for an absolute stock adjustment.
type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// AddStockRequest defines the payload for a relative stock increase.
type AddStockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// ProductResponse defines the data returned for a catalog product.
type ProductResponse struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Cost       decimal.Decimal `json:"cost"`
	SalePrice  decimal.Decimal `json:"salePrice"`
	Stock      int             `json:"stock"`
	Category   string          `json:"category"`
	Active     bool            `json:"active"`
	UnitProfit decimal.Decimal `json:"unitProfit"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		Code:       p.Code,
		Name:       p.Name,
		Cost:       p.Cost,
		SalePrice:  p.SalePrice,
		Stock:      p.Stock,
		Category:   p.Category,
		Active:     p.Active,
		UnitProfit: p.UnitProfit(),
		UpdatedAt:  p.LastUpdatedAt,
	}
}

// ToProductResponses converts a slice of domain.Product to []ProductResponse.
func ToProductResponses(ps []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(ps))
	for i := range ps {
		responses[i] = ToProductResponse(&ps[i])
	}
	return responses
}
