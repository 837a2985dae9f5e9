package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
	"github.com/elaroma/cafeteria_pos/internal/dto"
	"github.com/elaroma/cafeteria_pos/internal/middleware"
)

// cartHandler handles HTTP requests related to draft sales.
type cartHandler struct {
	cartService portssvc.CartSvcFacade
}

// newCartHandler creates a new cartHandler.
func newCartHandler(cs portssvc.CartSvcFacade) *cartHandler {
	return &cartHandler{
		cartService: cs,
	}
}

// registerCartRoutes registers routes related to draft sales.
func registerCartRoutes(rg *gin.RouterGroup, cartService portssvc.CartSvcFacade) {
	h := newCartHandler(cartService)

	carts := rg.Group("/carts")
	{
		carts.POST("", h.createCart)
		carts.GET("/:cartID", h.getCart)
		carts.POST("/:cartID/items", h.addItem)
		carts.PUT("/:cartID/items/:code", h.setQuantity)
		carts.DELETE("/:cartID/items/:code", h.removeItem)
		carts.PUT("/:cartID/discount", h.applyDiscount)
		carts.POST("/:cartID/clear", h.clearCart)
	}
}

func (h *cartHandler) createCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCart", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cart, err := h.cartService.CreateCart(c.Request.Context(), req.Cashier)
	if err != nil {
		respondCartError(c, logger, err, "Failed to create cart")
		return
	}

	logger.Info("Cart created", slog.String("cart_id", cart.CartID), slog.String("cashier", cart.Cashier))
	c.JSON(http.StatusCreated, dto.ToCartResponse(cart))
}

func (h *cartHandler) getCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cart, err := h.cartService.GetCart(c.Request.Context(), c.Param("cartID"))
	if err != nil {
		respondCartError(c, logger, err, "Failed to retrieve cart")
		return
	}

	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

func (h *cartHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), c.Param("cartID"), req.ProductCode, req.Quantity)
	if err != nil {
		respondCartError(c, logger, err, "Failed to add item")
		return
	}

	logger.Info("Item added to cart",
		slog.String("cart_id", cart.CartID),
		slog.String("product_code", req.ProductCode),
		slog.Int("quantity", req.Quantity))
	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

func (h *cartHandler) setQuantity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cart, err := h.cartService.SetQuantity(c.Request.Context(), c.Param("cartID"), c.Param("code"), *req.Quantity)
	if err != nil {
		respondCartError(c, logger, err, "Failed to set quantity")
		return
	}

	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

func (h *cartHandler) removeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cart, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("cartID"), c.Param("code"))
	if err != nil {
		respondCartError(c, logger, err, "Failed to remove item")
		return
	}

	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

func (h *cartHandler) applyDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cart, err := h.cartService.ApplyDiscount(c.Request.Context(), c.Param("cartID"), req.Percentage)
	if err != nil {
		respondCartError(c, logger, err, "Failed to apply discount")
		return
	}

	logger.Info("Discount applied", slog.String("cart_id", cart.CartID), slog.String("pct", req.Percentage.String()))
	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

func (h *cartHandler) clearCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cart, err := h.cartService.ClearCart(c.Request.Context(), c.Param("cartID"))
	if err != nil {
		respondCartError(c, logger, err, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, dto.ToCartResponse(cart))
}

// respondCartError maps cart service errors to HTTP statuses.
func respondCartError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
	case errors.Is(err, apperrors.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, apperrors.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
	case errors.Is(err, apperrors.ErrCartFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is already finalized"})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidDiscount), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
