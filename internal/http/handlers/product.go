package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/luxtick-backend/internal/domain"
	"github.com/yungbote/luxtick-backend/internal/http/response"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
	"github.com/yungbote/luxtick-backend/internal/services"
)

type ProductHandler struct {
	log          *logger.Logger
	db           *gorm.DB
	resolver     services.ProductResolver
	query        services.ProductQueryService
	intelligence services.ItemIntelligenceService
}

func NewProductHandler(
	log *logger.Logger,
	db *gorm.DB,
	resolver services.ProductResolver,
	query services.ProductQueryService,
	intelligence services.ItemIntelligenceService,
) *ProductHandler {
	return &ProductHandler{
		log:          log.With("handler", "ProductHandler"),
		db:           db,
		resolver:     resolver,
		query:        query,
		intelligence: intelligence,
	}
}

type resolveProductRequest struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/products/resolve
func (h *ProductHandler) ResolveProduct(c *gin.Context) {
	var req resolveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.RespondError(c, http.StatusBadRequest, "blank_name", pkgerrors.ErrInvalidArgument)
		return
	}

	intel := h.intelligence.EnrichItems(c.Request.Context(), []string{name})
	var hint *services.ItemIntelligence
	if hi, ok := intel[name]; ok {
		hint = &hi
	}

	var product *types.Product
	var created bool
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var err error
		product, created, err = h.resolver.Resolve(c.Request.Context(), tx, name, hint)
		return err
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_name", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "resolve_failed", err)
		return
	}

	response.RespondOK(c, gin.H{
		"product": product,
		"created": created,
	})
}

// GET /api/products?ids=a,b,c
func (h *ProductHandler) GetProducts(c *gin.Context) {
	raw := strings.Split(c.Query("ids"), ",")
	ids := make([]uuid.UUID, 0, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
			return
		}
		ids = append(ids, id)
	}

	products, err := h.query.GetProducts(c.Request.Context(), nil, ids)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "load_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}

// GET /api/products/matches?term=...&limit=...
func (h *ProductHandler) FindMatches(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		response.RespondError(c, http.StatusBadRequest, "blank_term", pkgerrors.ErrInvalidArgument)
		return
	}
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		limit = parsed
	}

	matches, err := h.query.FindMatches(c.Request.Context(), nil, term, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "match_failed", err)
		return
	}
	response.RespondOK(c, matches)
}
