package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/luxtick-backend/internal/http/response"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
	"github.com/yungbote/luxtick-backend/internal/services"
)

type CategoryHandler struct {
	log      *logger.Logger
	taxonomy services.TaxonomyService
}

func NewCategoryHandler(log *logger.Logger, taxonomy services.TaxonomyService) *CategoryHandler {
	return &CategoryHandler{
		log:      log.With("handler", "CategoryHandler"),
		taxonomy: taxonomy,
	}
}

// GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomy.ListCategories(c.Request.Context(), nil)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"categories": categories})
}
