package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elaroma/cafeteria_pos/internal/apperrors"
	portssvc "github.com/elaroma/cafeteria_pos/internal/core/ports/services"
	"github.com/elaroma/cafeteria_pos/internal/dto"
	"github.com/elaroma/cafeteria_pos/internal/middleware"
)

const defaultSalePageSize = 50

// saleHandler handles HTTP requests for the commit protocol and the sale ledger.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{
		saleService: ss,
	}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	rg.POST("/carts/:cartID/commit", h.commitCart)
	rg.POST("/carts/:cartID/cancel", h.cancelCart)

	sales := rg.Group("/sales")
	{
		sales.GET("", h.listSales)
		sales.GET("/:saleNumber", h.getSale)
	}
}

func (h *saleHandler) commitCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cartID := c.Param("cartID")

	sale, err := h.saleService.CommitCart(c.Request.Context(), cartID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		case errors.Is(err, apperrors.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart has no line items"})
		case errors.Is(err, apperrors.ErrCartFinalized):
			c.JSON(http.StatusConflict, gin.H{"error": "Cart is already finalized"})
		case errors.Is(err, apperrors.ErrInsufficientStock), errors.Is(err, apperrors.ErrProductNotFound):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPersistence):
			logger.Error("Commit failed at persistence", slog.String("cart_id", cartID), slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sale could not be persisted, cart left intact"})
		default:
			logger.Error("Failed to commit cart", slog.String("cart_id", cartID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit cart"})
		}
		return
	}

	logger.Info("Cart committed", slog.String("cart_id", cartID), slog.Int64("sale_number", sale.SaleNumber))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

func (h *saleHandler) cancelCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cartID := c.Param("cartID")

	if err := h.saleService.CancelCart(c.Request.Context(), cartID); err != nil {
		respondCartError(c, logger, err, "Failed to cancel cart")
		return
	}

	logger.Info("Cart cancelled", slog.String("cart_id", cartID))
	c.Status(http.StatusNoContent)
}

func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	saleNumber, err := strconv.ParseInt(c.Param("saleNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sale number must be an integer"})
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), saleNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		} else {
			logger.Error("Failed to get sale from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listSales serves the paginated ledger, one calendar day, or one cashier's
// sales, depending on which query parameter is present.
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
			return
		}
		sales, err := h.saleService.ListSalesByDate(ctx, date)
		if err != nil {
			logger.Error("Failed to list sales by date", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
			return
		}
		c.JSON(http.StatusOK, dto.ListSalesResponse{Sales: dto.ToSaleResponses(sales)})
		return
	}

	if cashier := c.Query("cashier"); cashier != "" {
		sales, err := h.saleService.ListSalesByCashier(ctx, cashier)
		if err != nil {
			logger.Error("Failed to list sales by cashier", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
			return
		}
		c.JSON(http.StatusOK, dto.ListSalesResponse{Sales: dto.ToSaleResponses(sales)})
		return
	}

	limit := defaultSalePageSize
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	sales, token, err := h.saleService.ListSales(ctx, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ListSalesResponse{Sales: dto.ToSaleResponses(sales), NextToken: token})
}
