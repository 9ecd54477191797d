package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

// AutoMatchThreshold is the minimum similarity score at which a raw name is
// merged into an existing product instead of creating a new one. Write-side
// merges are riskier than read-side suggestions (a bad merge permanently
// pollutes an alias set), so this sits above SuggestMatchThreshold.
const AutoMatchThreshold = 80

type ProductResolver interface {
	// Resolve finds the canonical product for rawName or creates one. The
	// optional hint steers both matching (its canonical name becomes the
	// match target) and creation (name, aliases, category). All reads and
	// writes happen on tx when given, so a caller can batch many Resolve
	// calls into one transaction.
	Resolve(ctx context.Context, tx *gorm.DB, rawName string, hint *ItemIntelligence) (*types.Product, bool, error)
}

type productResolver struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	taxonomy    TaxonomyService
}

func NewProductResolver(
	db *gorm.DB,
	baseLog *logger.Logger,
	productRepo repos.ProductRepo,
	taxonomy TaxonomyService,
) ProductResolver {
	serviceLog := baseLog.With("service", "ProductResolver")
	return &productResolver{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		taxonomy:    taxonomy,
	}
}

// candidate is one entry of the per-call match index: a text (canonical name
// or alias) plus the product it belongs to. The index is rebuilt from the
// backing store on every call; enumeration order is the stable catalog order
// (creation time, then alias insertion order) so ties always break toward
// the earliest-created product.
type candidate struct {
	text    string
	product *types.Product
}

func buildCandidates(products []*types.Product) []candidate {
	candidates := make([]candidate, 0, len(products)*2)
	for _, p := range products {
		candidates = append(candidates, candidate{text: p.CanonicalName, product: p})
		for _, alias := range p.Aliases {
			candidates = append(candidates, candidate{text: alias, product: p})
		}
	}
	return candidates
}

// bestCandidate scores target against every candidate text and returns the
// first candidate holding the maximum score. Strictly-greater comparison
// keeps the earliest occurrence on ties.
func bestCandidate(target string, candidates []candidate) (candidate, int) {
	best := candidate{}
	bestScore := -1
	for _, c := range candidates {
		score := SimilarityScore(target, c.text)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}

func (prs *productResolver) Resolve(ctx context.Context, tx *gorm.DB, rawName string, hint *ItemIntelligence) (*types.Product, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = prs.db
	}

	name := strings.TrimSpace(rawName)
	if name == "" {
		return nil, false, fmt.Errorf("raw name is blank: %w", pkgerrors.ErrInvalidArgument)
	}

	products, err := prs.productRepo.ListAll(ctx, transaction)
	if err != nil {
		return nil, false, fmt.Errorf("load catalog: %w", err)
	}

	if len(products) == 0 {
		product, err := prs.createProduct(ctx, transaction, name, hint)
		if err != nil {
			return nil, false, err
		}
		return product, true, nil
	}

	target := name
	if hint != nil && strings.TrimSpace(hint.CanonicalName) != "" {
		target = strings.TrimSpace(hint.CanonicalName)
	}

	best, score := bestCandidate(target, buildCandidates(products))
	if score >= AutoMatchThreshold {
		matched := best.product
		prs.log.Info("Matched item to canonical product",
			"raw_name", name,
			"canonical_name", matched.CanonicalName,
			"score", score,
		)

		changed := matched.AddAlias(name)
		if hint != nil {
			for _, alias := range hint.Aliases {
				if matched.AddAlias(alias) {
					changed = true
				}
			}
			if matched.CategoryID == nil && strings.TrimSpace(hint.CategoryPath) != "" {
				categoryID, err := prs.taxonomy.ResolveOrCreatePath(ctx, transaction, hint.CategoryPath)
				if err != nil {
					return nil, false, fmt.Errorf("resolve category path: %w", err)
				}
				matched.CategoryID = &categoryID
				changed = true
			}
		}

		// A resolve that learned nothing new must not write.
		if changed {
			if err := prs.productRepo.Update(ctx, transaction, matched); err != nil {
				return nil, false, fmt.Errorf("update product: %w", err)
			}
		}
		return matched, false, nil
	}

	product, err := prs.createProduct(ctx, transaction, name, hint)
	if err != nil {
		return nil, false, err
	}
	return product, true, nil
}

// createProduct builds a new canonical product from the raw name and an
// optional hint. Alias order is deterministic: the raw source name first,
// then hint aliases, then the canonical name itself; once MaxAliases is hit
// the remainder (hint aliases last) is dropped.
func (prs *productResolver) createProduct(ctx context.Context, tx *gorm.DB, rawName string, hint *ItemIntelligence) (*types.Product, error) {
	canonical := TitleCaseName(rawName)
	if hint != nil && strings.TrimSpace(hint.CanonicalName) != "" {
		canonical = strings.TrimSpace(hint.CanonicalName)
	}

	product := &types.Product{
		ID:            uuid.New(),
		CanonicalName: canonical,
	}
	product.AddAlias(rawName)
	if hint != nil {
		for _, alias := range hint.Aliases {
			product.AddAlias(alias)
		}
		if strings.TrimSpace(hint.CategoryPath) != "" {
			categoryID, err := prs.taxonomy.ResolveOrCreatePath(ctx, tx, hint.CategoryPath)
			if err != nil {
				return nil, fmt.Errorf("resolve category path: %w", err)
			}
			product.CategoryID = &categoryID
		}
	}
	product.AddAlias(canonical)

	if _, err := prs.productRepo.Create(ctx, tx, []*types.Product{product}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	prs.log.Info("Created new canonical product", "canonical_name", product.CanonicalName)
	return product, nil
}

var titleCaser = cases.Title(language.Und)

// TitleCaseName trims a raw item name and title-cases every word, matching
// how canonical names are derived when no better suggestion exists.
func TitleCaseName(name string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}
