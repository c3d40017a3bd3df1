package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sanjeev1695/billing-software/internal/apperr"
	"github.com/Sanjeev1695/billing-software/internal/services"
)

// StatsHandler handles REST requests for analytics reports.
type StatsHandler struct {
	analyticsService services.IAnalyticsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(analyticsService services.IAnalyticsService) *StatsHandler {
	return &StatsHandler{analyticsService: analyticsService}
}

// TodayStats handles GET /api/bills/today-stats.
func (h *StatsHandler) TodayStats(c *gin.Context) {
	stats, err := h.analyticsService.DailyStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute today's stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// PeriodStats handles GET /api/stats/period.
func (h *StatsHandler) PeriodStats(c *gin.Context) {
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	stats, err := h.analyticsService.StatsForPeriod(c.Request.Context(), c.Query("period"), start, end)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute period stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TopItems handles GET /api/stats/top-items.
func (h *StatsHandler) TopItems(c *gin.Context) {
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	items, err := h.analyticsService.TopSellingItems(c.Request.Context(), start, end, limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank items"})
		return
	}
	c.JSON(http.StatusOK, items)
}
