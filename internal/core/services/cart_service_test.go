package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
)

func newTestCartService(t *testing.T, products ...domain.Product) (portssvc.CartSvcFacade, portssvc.CatalogSvcFacade, *MockProductRepository) {
	t.Helper()
	catalog, repo := newTestCatalog(t, products...)
	return NewCartService(catalog, dec("50")), catalog, repo
}

func TestCartService_CreateAndGet(t *testing.T) {
	carts, _, _ := newTestCartService(t)
	ctx := context.Background()

	cart, err := carts.CreateCart(ctx, "maria")
	require.NoError(t, err)
	assert.NotEmpty(t, cart.CartID)
	assert.Equal(t, domain.SaleOpen, cart.Status)
	assert.True(t, cart.IsEmpty())

	got, err := carts.GetCart(ctx, cart.CartID)
	require.NoError(t, err)
	assert.Equal(t, cart.CartID, got.CartID)

	_, err = carts.GetCart(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrCartNotFound)

	_, err = carts.CreateCart(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCartService_AddItem_SnapshotsPriceAndCost(t *testing.T) {
	carts, catalog, repo := newTestCartService(t, testProduct("COF1", "Espresso", 10))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	cart, err := carts.AddItem(ctx, cart.CartID, "COF1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].UnitPrice.Equal(dec("5.00")))
	assert.True(t, cart.Items[0].UnitCost.Equal(dec("2.00")))

	// A later price change must not leak into the snapshot.
	repo.On("UpdatePrice", mock.Anything, "COF1", dec("9.00")).Return(nil).Once()
	_, err = catalog.SetPrice(ctx, "COF1", dec("9.00"), "admin")
	require.NoError(t, err)

	cart, err = carts.GetCart(ctx, cart.CartID)
	require.NoError(t, err)
	assert.True(t, cart.Items[0].UnitPrice.Equal(dec("5.00")))
}

func TestCartService_AddItem_MergesByCode(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 10))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	_, err := carts.AddItem(ctx, cart.CartID, "COF1", 2)
	require.NoError(t, err)
	cart, err = carts.AddItem(ctx, cart.CartID, "COF1", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddItem_MergedTotalRevalidated(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 5))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	_, err := carts.AddItem(ctx, cart.CartID, "COF1", 3)
	require.NoError(t, err)

	// 3 already in the cart; 3 more would merge to 6 > 5.
	_, err = carts.AddItem(ctx, cart.CartID, "COF1", 3)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	// The failed add left the cart untouched.
	cart, _ = carts.GetCart(ctx, cart.CartID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartService_AddItem_Errors(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 5))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")

	_, err := carts.AddItem(ctx, cart.CartID, "COF1", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = carts.AddItem(ctx, cart.CartID, "NOPE1", 1)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	_, err = carts.AddItem(ctx, "missing", "COF1", 1)
	assert.ErrorIs(t, err, apperrors.ErrCartNotFound)
}

func TestCartService_RemoveAndSetQuantity(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 5), testProduct("SAN1", "Ham Sandwich", 5))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	_, _ = carts.AddItem(ctx, cart.CartID, "COF1", 2)
	_, _ = carts.AddItem(ctx, cart.CartID, "SAN1", 1)

	cart, err := carts.SetQuantity(ctx, cart.CartID, "COF1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[cart.ItemIndex("COF1")].Quantity)

	// Beyond stock rejects without mutation.
	_, err = carts.SetQuantity(ctx, cart.CartID, "COF1", 6)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	// Zero removes the line.
	cart, err = carts.SetQuantity(ctx, cart.CartID, "COF1", 0)
	require.NoError(t, err)
	assert.Equal(t, -1, cart.ItemIndex("COF1"))

	cart, err = carts.RemoveItem(ctx, cart.CartID, "SAN1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = carts.RemoveItem(ctx, cart.CartID, "SAN1")
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
}

func TestCartService_ApplyDiscount(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 10))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	_, _ = carts.AddItem(ctx, cart.CartID, "COF1", 2) // subtotal 10.00

	cart, err := carts.ApplyDiscount(ctx, cart.CartID, dec("10"))
	require.NoError(t, err)
	assert.True(t, cart.Total().Equal(dec("9.00")), "got %s", cart.Total())

	_, err = carts.ApplyDiscount(ctx, cart.CartID, dec("51"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDiscount)
	_, err = carts.ApplyDiscount(ctx, cart.CartID, dec("-1"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDiscount)

	// The ceiling itself is allowed.
	_, err = carts.ApplyDiscount(ctx, cart.CartID, dec("50"))
	assert.NoError(t, err)
}

func TestCartService_ClearCart(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 10))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	_, _ = carts.AddItem(ctx, cart.CartID, "COF1", 2)
	_, _ = carts.ApplyDiscount(ctx, cart.CartID, dec("10"))

	cart, err := carts.ClearCart(ctx, cart.CartID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.DiscountPct.IsZero())
}

func TestCartService_FinalizeCart_OneWay(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 10))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	_, _ = carts.AddItem(ctx, cart.CartID, "COF1", 1)

	_, err := carts.FinalizeCart(ctx, cart.CartID, domain.SaleOpen)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	cart, err = carts.FinalizeCart(ctx, cart.CartID, domain.SaleCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.SaleCancelled, cart.Status)

	// Every further mutation, including re-finalization, is rejected.
	_, err = carts.AddItem(ctx, cart.CartID, "COF1", 1)
	assert.ErrorIs(t, err, apperrors.ErrCartFinalized)
	_, err = carts.ApplyDiscount(ctx, cart.CartID, dec("5"))
	assert.ErrorIs(t, err, apperrors.ErrCartFinalized)
	_, err = carts.ClearCart(ctx, cart.CartID)
	assert.ErrorIs(t, err, apperrors.ErrCartFinalized)
	_, err = carts.FinalizeCart(ctx, cart.CartID, domain.SaleCommitted)
	assert.ErrorIs(t, err, apperrors.ErrCartFinalized)
}

func TestCartService_SnapshotsAreDefensive(t *testing.T) {
	carts, _, _ := newTestCartService(t, testProduct("COF1", "Espresso", 10))
	ctx := context.Background()

	cart, _ := carts.CreateCart(ctx, "maria")
	cart, _ = carts.AddItem(ctx, cart.CartID, "COF1", 2)

	cart.Items[0].Quantity = 99

	fresh, err := carts.GetCart(ctx, cart.CartID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
}
