package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/elaroma/cafeteria_pos/internal/core/domain"
)

// CartSvcFacade manages draft sales. Every call that touches a cart returns a
// snapshot copy; callers never hold an alias into the live cart.
type CartSvcFacade interface {
	// CreateCart opens a new empty cart for a cashier session.
	CreateCart(ctx context.Context, cashier string) (*domain.Cart, error)

	// GetCart returns a snapshot of the cart.
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)

	// AddItem snapshots the product's current price/cost into a new line or
	// merges into an existing one. The merged total is re-validated against
	// current stock, so repeated small adds cannot silently exceed it.
	AddItem(ctx context.Context, cartID, code string, qty int) (*domain.Cart, error)

	// RemoveItem drops the line for the given code.
	RemoveItem(ctx context.Context, cartID, code string) (*domain.Cart, error)

	// SetQuantity replaces the line quantity; qty <= 0 is equivalent to RemoveItem.
	SetQuantity(ctx context.Context, cartID, code string, qty int) (*domain.Cart, error)

	// ApplyDiscount sets the discount percentage, bounded by the configured ceiling.
	ApplyDiscount(ctx context.Context, cartID string, pct decimal.Decimal) (*domain.Cart, error)

	// ClearCart empties all lines and resets the discount to zero.
	ClearCart(ctx context.Context, cartID string) (*domain.Cart, error)

	// FinalizeCart moves an open cart to a terminal status. Used by the
	// transaction coordinator; finalized carts reject all further mutation.
	FinalizeCart(ctx context.Context, cartID string, status domain.SaleStatus) (*domain.Cart, error)
}
