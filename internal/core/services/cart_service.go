package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
)

// cartService keeps draft sales in an in-memory registry keyed by cart ID.
// Carts never touch the durable store; only a committed sale does.
type cartService struct {
	BaseService
	catalog        portssvc.CatalogReaderSvc
	maxDiscountPct decimal.Decimal

	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewCartService creates a new cart service. maxDiscountPct bounds ApplyDiscount.
func NewCartService(catalog portssvc.CatalogReaderSvc, maxDiscountPct decimal.Decimal) portssvc.CartSvcFacade {
	return &cartService{
		catalog:        catalog,
		maxDiscountPct: maxDiscountPct,
		carts:          make(map[string]*domain.Cart),
	}
}

// Ensure cartService implements the portssvc.CartSvcFacade interface
var _ portssvc.CartSvcFacade = (*cartService)(nil)

// CreateCart opens a new empty cart for a cashier session.
func (s *cartService) CreateCart(ctx context.Context, cashier string) (*domain.Cart, error) {
	if cashier == "" {
		return nil, fmt.Errorf("%w: cashier is required", apperrors.ErrValidation)
	}

	cart := &domain.Cart{
		CartID:      uuid.New().String(),
		Cashier:     cashier,
		Status:      domain.SaleOpen,
		DiscountPct: decimal.Zero,
		Items:       []domain.LineItem{},
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.carts[cart.CartID] = cart
	s.mu.Unlock()

	s.LogInfo(ctx, "Cart created", slog.String("cart_id", cart.CartID), slog.String("cashier", cashier))
	return snapshot(cart), nil
}

// GetCart returns a snapshot of the cart.
func (s *cartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, apperrors.ErrCartNotFound
	}
	return snapshot(cart), nil
}

// AddItem snapshots the product's current price and cost into a new line, or
// merges into the existing line for the same code. The merged quantity is
// re-validated against current stock before the cart is touched.
func (s *cartService) AddItem(ctx context.Context, cartID, code string, qty int) (*domain.Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	product, err := s.catalog.GetProduct(ctx, code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, apperrors.ErrCartNotFound
	}
	if !cart.IsOpen() {
		return nil, apperrors.ErrCartFinalized
	}

	merged := qty
	idx := cart.ItemIndex(code)
	if idx >= 0 {
		merged += cart.Items[idx].Quantity
	}
	if err := s.catalog.Reserve(ctx, code, merged); err != nil {
		return nil, err
	}

	if idx >= 0 {
		cart.Items[idx].Quantity = merged
	} else {
		cart.Items = append(cart.Items, domain.LineItem{
			ProductCode: product.Code,
			ProductName: product.Name,
			UnitPrice:   product.SalePrice,
			UnitCost:    product.Cost,
			Quantity:    qty,
		})
	}
	return snapshot(cart), nil
}

// RemoveItem drops the line for the given code.
func (s *cartService) RemoveItem(ctx context.Context, cartID, code string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, apperrors.ErrCartNotFound
	}
	if !cart.IsOpen() {
		return nil, apperrors.ErrCartFinalized
	}

	idx := cart.ItemIndex(code)
	if idx < 0 {
		return nil, apperrors.ErrItemNotFound
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return snapshot(cart), nil
}

// SetQuantity replaces the line quantity. A qty <= 0 removes the line, matching
// RemoveItem semantics.
func (s *cartService) SetQuantity(ctx context.Context, cartID, code string, qty int) (*domain.Cart, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, cartID, code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, apperrors.ErrCartNotFound
	}
	if !cart.IsOpen() {
		return nil, apperrors.ErrCartFinalized
	}

	idx := cart.ItemIndex(code)
	if idx < 0 {
		return nil, apperrors.ErrItemNotFound
	}
	if err := s.catalog.Reserve(ctx, code, qty); err != nil {
		return nil, err
	}
	cart.Items[idx].Quantity = qty
	return snapshot(cart), nil
}

// ApplyDiscount sets the discount percentage, bounded by the configured ceiling.
func (s *cartService) ApplyDiscount(ctx context.Context, cartID string, pct decimal.Decimal) (*domain.Cart, error) {
	if pct.IsNegative() || pct.GreaterThan(s.maxDiscountPct) {
		return nil, &apperrors.InvalidDiscountError{Pct: pct, Max: s.maxDiscountPct}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, apperrors.ErrCartNotFound
	}
	if !cart.IsOpen() {
		return nil, apperrors.ErrCartFinalized
	}

	cart.DiscountPct = pct
	return snapshot(cart), nil
}

// ClearCart empties all lines and resets the discount to zero.
func (s *cartService) ClearCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, apperrors.ErrCartNotFound
	}
	if !cart.IsOpen() {
		return nil, apperrors.ErrCartFinalized
	}

	cart.Items = []domain.LineItem{}
	cart.DiscountPct = decimal.Zero
	return snapshot(cart), nil
}

// FinalizeCart moves an open cart to a terminal status. Finalization is one-way;
// a finalized cart rejects every further mutation including re-finalization.
func (s *cartService) FinalizeCart(ctx context.Context, cartID string, status domain.SaleStatus) (*domain.Cart, error) {
	if status != domain.SaleCommitted && status != domain.SaleCancelled {
		return nil, fmt.Errorf("%w: %s is not a terminal status", apperrors.ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, apperrors.ErrCartNotFound
	}
	if !cart.IsOpen() {
		return nil, apperrors.ErrCartFinalized
	}

	cart.Status = status
	return snapshot(cart), nil
}

// snapshot returns a copy whose Items slice shares nothing with the live cart.
func snapshot(cart *domain.Cart) *domain.Cart {
	c := *cart
	c.Items = cart.CopyItems()
	return &c
}
