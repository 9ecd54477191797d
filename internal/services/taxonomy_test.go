package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
)

func newTaxonomyStack(t *testing.T) (TaxonomyService, repos.CategoryRepo) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger()
	categoryRepo := repos.NewCategoryRepo(gdb, log)
	return NewTaxonomyService(gdb, log, categoryRepo, nil), categoryRepo
}

func TestResolveOrCreatePathIdempotent(t *testing.T) {
	ctx := context.Background()
	taxonomy, categoryRepo := newTaxonomyStack(t)

	first, err := taxonomy.ResolveOrCreatePath(ctx, nil, "Produce > Fruits")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := taxonomy.ResolveOrCreatePath(ctx, nil, "Produce > Fruits")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first != second {
		t.Fatalf("same path produced different ids: %s vs %s", first, second)
	}

	count, err := categoryRepo.CountAll(ctx, nil)
	if err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 categories (root + child), got %d", count)
	}
}

func TestResolveOrCreatePathTrimsSegments(t *testing.T) {
	ctx := context.Background()
	taxonomy, _ := newTaxonomyStack(t)

	clean, err := taxonomy.ResolveOrCreatePath(ctx, nil, "Meat > Poultry")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	padded, err := taxonomy.ResolveOrCreatePath(ctx, nil, "  Meat   >  Poultry ")
	if err != nil {
		t.Fatalf("resolve padded: %v", err)
	}
	if clean != padded {
		t.Fatalf("padded path resolved to a different id")
	}
}

func TestResolveOrCreatePathSingleSegment(t *testing.T) {
	ctx := context.Background()
	taxonomy, categoryRepo := newTaxonomyStack(t)

	id, err := taxonomy.ResolveOrCreatePath(ctx, nil, "Other")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cat, err := categoryRepo.GetByNameAndParent(context.Background(), nil, "Other", nil)
	if err != nil {
		t.Fatalf("lookup root: %v", err)
	}
	if cat.ID != id {
		t.Fatalf("root id mismatch")
	}
	if cat.ParentID != nil {
		t.Fatalf("root category must have no parent")
	}
}

func TestResolveOrCreatePathBlank(t *testing.T) {
	taxonomy, _ := newTaxonomyStack(t)
	if _, err := taxonomy.ResolveOrCreatePath(context.Background(), nil, "  >  "); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestListCategoriesReturnsCreatedNodes(t *testing.T) {
	ctx := context.Background()
	taxonomy, _ := newTaxonomyStack(t)

	if _, err := taxonomy.ResolveOrCreatePath(ctx, nil, "Produce > Fruits"); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	categories, err := taxonomy.ListCategories(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Produce" || categories[0].ParentID != nil {
		t.Fatalf("first row must be the root, got %+v", categories[0])
	}
	if categories[1].Name != "Fruits" || categories[1].ParentID == nil || *categories[1].ParentID != categories[0].ID {
		t.Fatalf("second row must be the child, got %+v", categories[1])
	}
}

func TestDefaultPathsIncludeFallback(t *testing.T) {
	taxonomy, _ := newTaxonomyStack(t)
	paths := taxonomy.DefaultPaths()
	if len(paths) == 0 {
		t.Fatalf("expected non-empty default paths")
	}
	found := false
	for _, p := range paths {
		if p == FallbackCategoryPath {
			found = true
		}
	}
	if !found {
		t.Fatalf("default paths missing %q", FallbackCategoryPath)
	}
}
