package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/luxtick-backend/internal/domain"
)

type stubTaxonomy struct {
	paths []string
}

func (s *stubTaxonomy) ResolveOrCreatePath(ctx context.Context, tx *gorm.DB, path string) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (s *stubTaxonomy) DefaultPaths() []string { return s.paths }

func (s *stubTaxonomy) ListCategories(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	return nil, nil
}

type stubAIClient struct {
	response map[string]any
	err      error
	calls    int
}

func (s *stubAIClient) GenerateJSON(ctx context.Context, system string, user string) (map[string]any, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func TestEnrichItemsDisabledUsesFallback(t *testing.T) {
	ai := &stubAIClient{}
	svc := NewItemIntelligenceService(newTestLogger(), ai, &stubTaxonomy{}, false)

	intel := svc.EnrichItems(context.Background(), []string{"pechuga de pollo"})
	if ai.calls != 0 {
		t.Fatalf("disabled service must not call the client")
	}
	got, ok := intel["pechuga de pollo"]
	if !ok {
		t.Fatalf("missing entry for requested name")
	}
	if got.CanonicalName != "Pechuga De Pollo" {
		t.Fatalf("fallback canonical = %q", got.CanonicalName)
	}
	if got.CategoryPath != FallbackCategoryPath {
		t.Fatalf("fallback category = %q", got.CategoryPath)
	}
	if got.Confidence != 0 {
		t.Fatalf("fallback confidence = %v", got.Confidence)
	}
}

func TestEnrichItemsModelErrorUsesFallback(t *testing.T) {
	ai := &stubAIClient{err: errors.New("rate limited")}
	svc := NewItemIntelligenceService(newTestLogger(), ai, &stubTaxonomy{}, true)

	intel := svc.EnrichItems(context.Background(), []string{"milk"})
	got, ok := intel["milk"]
	if !ok {
		t.Fatalf("missing entry for requested name")
	}
	if got.CanonicalName != "Milk" || got.CategoryPath != FallbackCategoryPath {
		t.Fatalf("model failure must fall back to identity mapping, got %+v", got)
	}
}

func TestEnrichItemsNormalizesModelOutput(t *testing.T) {
	ai := &stubAIClient{response: map[string]any{
		"items": []any{
			map[string]any{
				"source_name":       "pechuga de pollo",
				"canonical_name_en": "CHICKEN BREAST",
				"aliases_en":        []any{"  pechuga de pollo ", ""},
				"category_path_en":  "Meat > Poultry",
				"confidence":        1.7,
			},
		},
	}}
	svc := NewItemIntelligenceService(newTestLogger(), ai, &stubTaxonomy{}, true)

	intel := svc.EnrichItems(context.Background(), []string{"pechuga de pollo"})
	got, ok := intel["pechuga de pollo"]
	if !ok {
		t.Fatalf("missing entry for requested name")
	}
	if got.CanonicalName != "Chicken Breast" {
		t.Fatalf("canonical not title-cased: %q", got.CanonicalName)
	}
	if got.Confidence != 1 {
		t.Fatalf("confidence not clamped: %v", got.Confidence)
	}
	if !containsFold(got.Aliases, "Chicken Breast") {
		t.Fatalf("canonical name must appear among aliases: %v", got.Aliases)
	}
	for _, alias := range got.Aliases {
		if alias == "" || alias != "Chicken Breast" && alias != "pechuga de pollo" {
			t.Fatalf("unexpected alias %q in %v", alias, got.Aliases)
		}
	}
}

func TestEnrichItemsFillsSkippedNames(t *testing.T) {
	ai := &stubAIClient{response: map[string]any{
		"items": []any{
			map[string]any{
				"source_name":       "milk",
				"canonical_name_en": "Milk",
				"category_path_en":  "Dairy > Milk",
				"confidence":        0.9,
			},
		},
	}}
	svc := NewItemIntelligenceService(newTestLogger(), ai, &stubTaxonomy{}, true)

	intel := svc.EnrichItems(context.Background(), []string{"milk", "bread"})
	if _, ok := intel["milk"]; !ok {
		t.Fatalf("model-covered name missing")
	}
	skipped, ok := intel["bread"]
	if !ok {
		t.Fatalf("model-skipped name must still get an entry")
	}
	if skipped.CanonicalName != "Bread" || skipped.CategoryPath != FallbackCategoryPath {
		t.Fatalf("skipped name must use identity fallback, got %+v", skipped)
	}
}

func TestEnrichItemsCapsAliases(t *testing.T) {
	aliases := make([]any, 0, maxHintAliases+10)
	for i := 0; i < maxHintAliases+10; i++ {
		aliases = append(aliases, "alias-"+string(rune('a'+i)))
	}
	ai := &stubAIClient{response: map[string]any{
		"items": []any{
			map[string]any{
				"source_name":       "milk",
				"canonical_name_en": "Milk",
				"aliases_en":        aliases,
				"category_path_en":  "Dairy > Milk",
				"confidence":        0.5,
			},
		},
	}}
	svc := NewItemIntelligenceService(newTestLogger(), ai, &stubTaxonomy{}, true)

	got := svc.EnrichItems(context.Background(), []string{"milk"})["milk"]
	if len(got.Aliases) > maxHintAliases {
		t.Fatalf("aliases not capped: %d", len(got.Aliases))
	}
}

func TestEnrichItemsBlankInput(t *testing.T) {
	svc := NewItemIntelligenceService(newTestLogger(), nil, &stubTaxonomy{}, false)
	intel := svc.EnrichItems(context.Background(), []string{"", "   "})
	if len(intel) != 0 {
		t.Fatalf("blank names must be dropped, got %v", intel)
	}
}
