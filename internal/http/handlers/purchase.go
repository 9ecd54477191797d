package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/luxtick-backend/internal/http/response"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
	"github.com/yungbote/luxtick-backend/internal/services"
)

type PurchaseHandler struct {
	log       *logger.Logger
	purchases services.PurchaseService
}

func NewPurchaseHandler(log *logger.Logger, purchases services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		log:       log.With("handler", "PurchaseHandler"),
		purchases: purchases,
	}
}

type recordPurchaseRequest struct {
	UserID       uuid.UUID                    `json:"user_id" binding:"required"`
	StoreName    string                       `json:"store_name"`
	PurchaseDate string                       `json:"purchase_date"`
	Currency     string                       `json:"currency"`
	Items        []services.PurchaseItemInput `json:"items" binding:"required"`
}

// POST /api/purchases
func (h *PurchaseHandler) RecordPurchase(c *gin.Context) {
	var req recordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	var purchaseDate time.Time
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
			return
		}
		purchaseDate = parsed
	}

	receipt, err := h.purchases.RecordPurchase(
		c.Request.Context(),
		req.UserID,
		req.StoreName,
		purchaseDate,
		req.Currency,
		req.Items,
	)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_purchase", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "record_failed", err)
		return
	}
	response.RespondCreated(c, receipt)
}

// GET /api/purchases?user_id=...&limit=...
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
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

	receipts, err := h.purchases.ListPurchases(c.Request.Context(), userID, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"receipts": receipts})
}

// GET /api/purchases/search?user_id=...&q=...&limit=...
func (h *PurchaseHandler) SearchPurchases(c *gin.Context) {
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

	rows, err := h.purchases.SearchPurchases(c.Request.Context(), userID, c.Query("q"), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "search_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"results": rows,
		"count":   len(rows),
	})
}
