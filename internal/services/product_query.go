package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

// SuggestMatchThreshold is the minimum similarity score for the read-side
// fuzzy fallback. It sits below AutoMatchThreshold: suggesting an
// approximate match for one query is lower-risk than merging write-side
// data, which cannot be undone.
const SuggestMatchThreshold = 75

const defaultMatchLimit = 10

// ProductMatches is the read-side lookup result: product ids plus the
// display names they matched under.
type ProductMatches struct {
	ProductIDs   []uuid.UUID `json:"product_ids"`
	MatchedNames []string    `json:"matched_names"`
}

type ProductQueryService interface {
	// FindMatches answers "which canonical products match this user-typed
	// term". It never creates anything: a case-insensitive substring search
	// over canonical names, aliases and category names runs first; only when
	// that yields nothing does a fuzzy pass over the full candidate index
	// suggest at most one product. A blank term yields an empty result.
	FindMatches(ctx context.Context, tx *gorm.DB, term string, limit int) (ProductMatches, error)
	// GetProducts loads full product rows for a set of ids, typically the
	// ids returned by FindMatches. Unknown ids are silently absent.
	GetProducts(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
}

type productQueryService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
}

func NewProductQueryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	productRepo repos.ProductRepo,
) ProductQueryService {
	serviceLog := baseLog.With("service", "ProductQueryService")
	return &productQueryService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
	}
}

func (pqs *productQueryService) FindMatches(ctx context.Context, tx *gorm.DB, term string, limit int) (ProductMatches, error) {
	transaction := tx
	if transaction == nil {
		transaction = pqs.db
	}

	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return ProductMatches{}, nil
	}
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	matches, err := pqs.productRepo.SearchText(ctx, transaction, trimmed, limit)
	if err != nil {
		return ProductMatches{}, fmt.Errorf("substring search: %w", err)
	}
	if len(matches) > 0 {
		result := ProductMatches{
			ProductIDs:   make([]uuid.UUID, 0, len(matches)),
			MatchedNames: make([]string, 0, len(matches)),
		}
		for _, p := range matches {
			result.ProductIDs = append(result.ProductIDs, p.ID)
			result.MatchedNames = append(result.MatchedNames, p.CanonicalName)
		}
		return result, nil
	}

	// Fuzzy fallback over the full candidate index, single best suggestion.
	products, err := pqs.productRepo.ListAll(ctx, transaction)
	if err != nil {
		return ProductMatches{}, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return ProductMatches{}, nil
	}

	best, score := bestCandidate(trimmed, buildCandidates(products))
	if score < SuggestMatchThreshold {
		return ProductMatches{}, nil
	}

	pqs.log.Debug("Fuzzy match suggestion",
		"term", trimmed,
		"canonical_name", best.product.CanonicalName,
		"score", score,
	)
	return ProductMatches{
		ProductIDs:   []uuid.UUID{best.product.ID},
		MatchedNames: []string{best.product.CanonicalName},
	}, nil
}

func (pqs *productQueryService) GetProducts(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pqs.db
	}
	return pqs.productRepo.GetByIDs(ctx, transaction, productIDs)
}
