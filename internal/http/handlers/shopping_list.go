package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/luxtick-backend/internal/http/response"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
	"github.com/yungbote/luxtick-backend/internal/services"
)

type ShoppingListHandler struct {
	log   *logger.Logger
	lists services.ShoppingListService
}

func NewShoppingListHandler(log *logger.Logger, lists services.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{
		log:   log.With("handler", "ShoppingListHandler"),
		lists: lists,
	}
}

type createListRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Name   string    `json:"name"`
	Items  []string  `json:"items"`
}

// POST /api/shopping-lists
func (h *ShoppingListHandler) CreateList(c *gin.Context) {
	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	list, err := h.lists.CreateList(c.Request.Context(), req.UserID, req.Name, req.Items)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_list", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "create_failed", err)
		return
	}
	response.RespondCreated(c, list)
}

type addItemsRequest struct {
	Items []string `json:"items" binding:"required"`
}

// POST /api/shopping-lists/:id/items
func (h *ShoppingListHandler) AddItems(c *gin.Context) {
	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_list_id", err)
		return
	}
	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	list, err := h.lists.AddItems(c.Request.Context(), listID, req.Items)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "list_not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "add_failed", err)
		return
	}
	response.RespondOK(c, list)
}

// GET /api/shopping-lists?user_id=...
func (h *ShoppingListHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}

	lists, err := h.lists.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"lists": lists})
}

type checkItemRequest struct {
	Checked bool `json:"checked"`
}

// POST /api/shopping-list-items/:id/check
func (h *ShoppingListHandler) CheckOffItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	var req checkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if err := h.lists.CheckOffItem(c.Request.Context(), itemID, req.Checked); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "item_not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "check_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"checked": req.Checked})
}
