package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
)

func newQueryStack(t *testing.T) (*gorm.DB, ProductQueryService, ProductResolver) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger()
	productRepo := repos.NewProductRepo(gdb, log)
	categoryRepo := repos.NewCategoryRepo(gdb, log)
	taxonomy := NewTaxonomyService(gdb, log, categoryRepo, nil)
	resolver := NewProductResolver(gdb, log, productRepo, taxonomy)
	query := NewProductQueryService(gdb, log, productRepo)
	return gdb, query, resolver
}

func TestFindMatchesBlankTerm(t *testing.T) {
	_, query, _ := newQueryStack(t)
	matches, err := query.FindMatches(context.Background(), nil, "   ", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches.ProductIDs) != 0 {
		t.Fatalf("blank term must match nothing")
	}
}

func TestFindMatchesEmptyCatalog(t *testing.T) {
	_, query, _ := newQueryStack(t)
	matches, err := query.FindMatches(context.Background(), nil, "pollo", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches.ProductIDs) != 0 {
		t.Fatalf("empty catalog must match nothing")
	}
}

func TestFindMatchesSubstringOverAlias(t *testing.T) {
	ctx := context.Background()
	_, query, resolver := newQueryStack(t)

	seeded, _, err := resolver.Resolve(ctx, nil, "PECH POLLO", &ItemIntelligence{
		SourceName:    "PECH POLLO",
		CanonicalName: "Chicken Breast",
		Aliases:       []string{"PECH POLLO"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	matches, err := query.FindMatches(ctx, nil, "pollo", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches.ProductIDs) != 1 || matches.ProductIDs[0] != seeded.ID {
		t.Fatalf("expected the seeded product, got %+v", matches)
	}
	if matches.MatchedNames[0] != "Chicken Breast" {
		t.Fatalf("matched name = %q", matches.MatchedNames[0])
	}
}

func TestFindMatchesSubstringOverCategoryName(t *testing.T) {
	ctx := context.Background()
	_, query, resolver := newQueryStack(t)

	seeded, _, err := resolver.Resolve(ctx, nil, "gala apples", &ItemIntelligence{
		SourceName:    "gala apples",
		CanonicalName: "Apples",
		CategoryPath:  "Produce > Fruits",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	matches, err := query.FindMatches(ctx, nil, "fruit", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches.ProductIDs) != 1 || matches.ProductIDs[0] != seeded.ID {
		t.Fatalf("category-name search failed: %+v", matches)
	}
}

func TestFindMatchesFuzzyFallback(t *testing.T) {
	ctx := context.Background()
	_, query, resolver := newQueryStack(t)

	seeded, _, err := resolver.Resolve(ctx, nil, "applesauce", nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// "aplesauce" is not a substring of anything stored, but is one edit
	// away from "applesauce".
	matches, err := query.FindMatches(ctx, nil, "aplesauce", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches.ProductIDs) != 1 || matches.ProductIDs[0] != seeded.ID {
		t.Fatalf("fuzzy fallback failed: %+v", matches)
	}
	if len(matches.MatchedNames) != 1 {
		t.Fatalf("fuzzy fallback must suggest at most one name")
	}
}

func TestFindMatchesNoSuggestionBelowThreshold(t *testing.T) {
	ctx := context.Background()
	_, query, resolver := newQueryStack(t)

	if _, _, err := resolver.Resolve(ctx, nil, "applesauce", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	matches, err := query.FindMatches(ctx, nil, "zebra", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches.ProductIDs) != 0 {
		t.Fatalf("unrelated term must match nothing, got %+v", matches)
	}
}

func TestSuggestionBandDoesNotAutoMerge(t *testing.T) {
	ctx := context.Background()
	gdb, query, resolver := newQueryStack(t)

	seeded, _, err := resolver.Resolve(ctx, nil, "applesauce", nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// "applesauce123" scores 77 against "applesauce": above the suggestion
	// threshold but below the auto-match threshold. Queries suggest it,
	// writes refuse to merge it.
	matches, err := query.FindMatches(ctx, nil, "applesauce123", 10)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches.ProductIDs) != 1 || matches.ProductIDs[0] != seeded.ID {
		t.Fatalf("expected the seeded product as the single suggestion, got %+v", matches)
	}

	product, created, err := resolver.Resolve(ctx, nil, "applesauce123", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !created {
		t.Fatalf("resolve must create below the auto-match threshold")
	}
	if product.ID == seeded.ID {
		t.Fatalf("resolve must not merge into the suggested product")
	}

	var count int64
	if err := gdb.Table("products").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two products, got %d", count)
	}
}

func TestGetProducts(t *testing.T) {
	ctx := context.Background()
	_, query, resolver := newQueryStack(t)

	seeded, _, err := resolver.Resolve(ctx, nil, "applesauce", nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	products, err := query.GetProducts(ctx, nil, []uuid.UUID{seeded.ID, uuid.New()})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(products) != 1 || products[0].ID != seeded.ID {
		t.Fatalf("unexpected products: %+v", products)
	}

	none, err := query.GetProducts(ctx, nil, nil)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("empty id list must load nothing")
	}
}

func TestFindMatchesNeverWrites(t *testing.T) {
	ctx := context.Background()
	gdb, query, resolver := newQueryStack(t)

	if _, _, err := resolver.Resolve(ctx, nil, "applesauce", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, term := range []string{"aplesauce", "zebra", "pollo"} {
		if _, err := query.FindMatches(ctx, nil, term, 10); err != nil {
			t.Fatalf("find %q: %v", term, err)
		}
	}

	var count int64
	if err := gdb.Table("products").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("queries must never create products, got %d rows", count)
	}
}
