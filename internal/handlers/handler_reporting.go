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

const defaultTopSellerCount = 10

// reportingHandler handles HTTP requests for aggregate reports.
type reportingHandler struct {
	reportingService  portssvc.ReportingSvcFacade
	lowStockThreshold int
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade, lowStockThreshold int) *reportingHandler {
	return &reportingHandler{
		reportingService:  rs,
		lowStockThreshold: lowStockThreshold,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, lowStockThreshold int) {
	h := newReportingHandler(reportingService, lowStockThreshold)

	reports := rg.Group("/reports")
	{
		reports.GET("/daily", h.dailyTotals)
		reports.GET("/top-sellers", h.topSellers)
		reports.GET("/low-stock", h.lowStock)
		reports.GET("/cashiers", h.salesByCashier)
		reports.GET("/summary", h.generalSummary)
		reports.GET("/activity", h.recentActivities)
	}
}

// dailyTotals reports one calendar day, defaulting to today (UTC).
func (h *reportingHandler) dailyTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	report, err := h.reportingService.DailyTotals(c.Request.Context(), date)
	if err != nil {
		logger.Error("Failed to build daily report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build daily report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) topSellers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	n := defaultTopSellerCount
	if nStr := c.Query("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	rows, err := h.reportingService.TopSellers(c.Request.Context(), n)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build top sellers report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build top sellers report"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *reportingHandler) lowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	threshold := h.lowStockThreshold
	if tStr := c.Query("threshold"); tStr != "" {
		parsed, err := strconv.Atoi(tStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a non-negative integer"})
			return
		}
		threshold = parsed
	}

	products, err := h.reportingService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		logger.Error("Failed to build low stock report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build low stock report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

func (h *reportingHandler) salesByCashier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	reports, err := h.reportingService.SalesByCashier(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build cashier report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build cashier report"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (h *reportingHandler) recentActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	activities, err := h.reportingService.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to list recent activities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recent activities"})
		return
	}

	c.JSON(http.StatusOK, activities)
}

func (h *reportingHandler) generalSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.GeneralSummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build ledger summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
