package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/luxtick-backend/internal/http/response"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
	"github.com/yungbote/luxtick-backend/internal/services"
)

type AnalyticsHandler struct {
	log       *logger.Logger
	analytics services.AnalyticsService
}

func NewAnalyticsHandler(log *logger.Logger, analytics services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:       log.With("handler", "AnalyticsHandler"),
		analytics: analytics,
	}
}

// GET /api/analytics/summary?user_id=...&period=...&group_by=...&store=...&category=...&start_date=...&end_date=...
func (h *AnalyticsHandler) SpendingSummary(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	summary, err := h.analytics.GetSpendingSummary(c.Request.Context(), userID, services.SpendingQuery{
		Period:    c.Query("period"),
		GroupBy:   c.Query("group_by"),
		Store:     c.Query("store"),
		Category:  c.Query("category"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_query", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "summary_failed", err)
		return
	}
	response.RespondOK(c, summary)
}

// GET /api/analytics/frequent?user_id=...&period=...&limit=...
func (h *AnalyticsHandler) FrequentPurchases(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, convErr := strconv.Atoi(rawLimit)
		if convErr != nil || parsed < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", convErr)
			return
		}
		limit = parsed
	}

	period := c.Query("period")
	if period == "" {
		period = "all_time"
	}
	items, err := h.analytics.GetFrequentPurchases(c.Request.Context(), userID, period, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "frequent_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"period":         period,
		"frequent_items": items,
	})
}

// GET /api/analytics/prices?user_id=...&product=...&store=...&period=...
func (h *AnalyticsHandler) ComparePrices(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	comparison, err := h.analytics.ComparePrices(
		c.Request.Context(),
		userID,
		c.Query("product"),
		c.Query("store"),
		c.Query("period"),
	)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_query", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "compare_failed", err)
		return
	}
	response.RespondOK(c, comparison)
}
