package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProductNotFound indicates that a product code does not resolve to an active catalog entry.
// Callers outside administrative tooling cannot distinguish an inactive product from an absent one.
var ErrProductNotFound = errors.New("product not found")

// ErrInactiveProduct indicates an administrative operation targeted a soft-deleted product.
var ErrInactiveProduct = errors.New("product is inactive")

// ErrCartNotFound indicates that no cart is registered under the given ID.
var ErrCartNotFound = errors.New("cart not found")

// ErrItemNotFound indicates the cart has no line for the given product code.
var ErrItemNotFound = errors.New("item not in cart")

// ErrEmptyCart indicates an attempt to commit a cart with no line items.
var ErrEmptyCart = errors.New("cart has no line items")

// ErrCartFinalized indicates a mutation or commit was attempted on a cart that is
// already committed or cancelled. Finalization is one-way.
var ErrCartFinalized = errors.New("cart is already finalized")

// ErrInsufficientStock is the sentinel matched by InsufficientStockError via errors.Is.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidDiscount is the sentinel matched by InvalidDiscountError via errors.Is.
var ErrInvalidDiscount = errors.New("invalid discount percentage")

// ErrPersistence is the sentinel matched by PersistenceError via errors.Is.
var ErrPersistence = errors.New("persistence failure")

// InsufficientStockError reports the first line item that failed a stock check.
// No stock is mutated when this error is returned.
type InsufficientStockError struct {
	Code      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.Code, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidDiscountError reports a discount percentage outside the configured range.
type InvalidDiscountError struct {
	Pct decimal.Decimal
	Max decimal.Decimal
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("invalid discount percentage %s: must be between 0 and %s", e.Pct.String(), e.Max.String())
}

func (e *InvalidDiscountError) Is(target error) bool {
	return target == ErrInvalidDiscount || target == ErrValidation
}

// PersistenceError wraps a failure of the durable store during a commit.
// By the time the caller sees it, all in-memory mutations have been compensated.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("persistence failure during %s", e.Op)
	}
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
