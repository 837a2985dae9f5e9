package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	"github.com/elaroma/cafeteria_pos/internal/core/domain"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
	"github.com/elaroma/cafeteria_pos/internal/dto"
	"github.com/elaroma/cafeteria_pos/internal/middleware"
)

// productHandler handles HTTP requests related to the product catalog.
type productHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newProductHandler creates a new productHandler.
func newProductHandler(cs portssvc.CatalogSvcFacade) *productHandler {
	return &productHandler{
		catalogService: cs,
	}
}

// registerProductRoutes registers routes related to the product catalog.
func registerProductRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newProductHandler(catalogService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:code", h.getProductByCode)
		products.PUT("/:code/price", h.updatePrice)
		products.PUT("/:code/stock", h.updateStock)
		products.POST("/:code/restock", h.addStock)
		products.DELETE("/:code", h.deactivateProduct)
	}

	rg.GET("/inventory/value", h.inventoryValue)
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor := actorFromRequest(c)
	logger.Info("Received request to create product", slog.String("code", req.Code))

	product, err := h.catalogService.CreateProduct(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate product", slog.String("code", req.Code))
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Product code '%s' already exists", req.Code)})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating product", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create product in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	logger.Info("Product created successfully", slog.String("code", product.Code))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts serves the full active catalog, one category, or a name search,
// depending on which query parameter is present.
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	var err error
	var products []dto.ProductResponse
	switch {
	case c.Query("search") != "":
		products, err = wrapProductList(h.catalogService.SearchProductsByName(ctx, c.Query("search")))
	case c.Query("category") != "":
		products, err = wrapProductList(h.catalogService.ListProductsByCategory(ctx, c.Query("category")))
	case c.Query("lowStock") != "":
		threshold, convErr := strconv.Atoi(c.Query("lowStock"))
		if convErr != nil || threshold < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lowStock must be a non-negative integer"})
			return
		}
		products, err = wrapProductList(h.catalogService.LowStock(ctx, threshold))
	default:
		products, err = wrapProductList(h.catalogService.ListProducts(ctx))
	}
	if err != nil {
		logger.Error("Failed to list products from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *productHandler) getProductByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	product, err := h.catalogService.GetProduct(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			logger.Error("Failed to get product from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) updatePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.catalogService.SetPrice(c.Request.Context(), code, req.SalePrice, actorFromRequest(c))
	if err != nil {
		respondCatalogError(c, logger, err, "Failed to update price")
		return
	}

	logger.Info("Product price updated", slog.String("code", code))
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) updateStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	var req dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.catalogService.SetStock(c.Request.Context(), code, *req.Stock, actorFromRequest(c))
	if err != nil {
		respondCatalogError(c, logger, err, "Failed to update stock")
		return
	}

	logger.Info("Product stock updated", slog.String("code", code), slog.Int("stock", product.Stock))
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) addStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	var req dto.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.catalogService.AddStock(c.Request.Context(), code, req.Quantity, actorFromRequest(c))
	if err != nil {
		respondCatalogError(c, logger, err, "Failed to restock product")
		return
	}

	logger.Info("Product restocked", slog.String("code", code), slog.Int("stock", product.Stock))
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) deactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	if err := h.catalogService.DeactivateProduct(c.Request.Context(), code, actorFromRequest(c)); err != nil {
		respondCatalogError(c, logger, err, "Failed to deactivate product")
		return
	}

	logger.Info("Product deactivated", slog.String("code", code))
	c.Status(http.StatusNoContent)
}

func (h *productHandler) inventoryValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	value, err := h.catalogService.InventoryValue(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute inventory value", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute inventory value"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventoryValue": value})
}

// respondCatalogError maps catalog service errors to HTTP statuses.
func respondCatalogError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrProductNotFound), errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, apperrors.ErrInactiveProduct):
		c.JSON(http.StatusConflict, gin.H{"error": "Product is inactive"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func wrapProductList(products []domain.Product, err error) ([]dto.ProductResponse, error) {
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponses(products), nil
}
