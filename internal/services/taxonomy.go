package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

// PathSeparator joins category levels in a path string: "Meat > Poultry".
const PathSeparator = " > "

// FallbackCategoryPath is the sentinel path used whenever nothing better is
// known about an item.
const FallbackCategoryPath = "Other > Uncategorized"

type TaxonomyService interface {
	// ResolveOrCreatePath maps a path string like "Root" or "Root > Child"
	// onto category rows, creating missing levels, and returns the id of the
	// leaf segment. Idempotent: the same path always yields the same id.
	ResolveOrCreatePath(ctx context.Context, tx *gorm.DB, path string) (uuid.UUID, error)
	// DefaultPaths lists the "Root > Child" paths of the configured default
	// tree, sorted, always including FallbackCategoryPath.
	DefaultPaths() []string
	// ListCategories returns every persisted category node in creation
	// order, roots before the children created under them.
	ListCategories(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
}

type taxonomyService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
	defaultTree  map[string][]string
}

func NewTaxonomyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	categoryRepo repos.CategoryRepo,
	defaultTree map[string][]string,
) TaxonomyService {
	serviceLog := baseLog.With("service", "TaxonomyService")
	if len(defaultTree) == 0 {
		defaultTree = builtinCategoryTree
	}
	return &taxonomyService{
		db:           db,
		log:          serviceLog,
		categoryRepo: categoryRepo,
		defaultTree:  defaultTree,
	}
}

func (ts *taxonomyService) ResolveOrCreatePath(ctx context.Context, tx *gorm.DB, path string) (uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ts.db
	}

	segments := splitCategoryPath(path)
	if len(segments) == 0 {
		return uuid.Nil, fmt.Errorf("category path %q: %w", path, pkgerrors.ErrInvalidArgument)
	}

	var parentID *uuid.UUID
	var current *types.Category
	for _, segment := range segments {
		existing, err := ts.categoryRepo.GetByNameAndParent(ctx, transaction, segment, parentID)
		switch {
		case err == nil:
			current = existing
		case errors.Is(err, pkgerrors.ErrNotFound):
			created := &types.Category{
				ID:       uuid.New(),
				Name:     segment,
				ParentID: parentID,
			}
			if _, err := ts.categoryRepo.Create(ctx, transaction, []*types.Category{created}); err != nil {
				return uuid.Nil, fmt.Errorf("create category %q: %w", segment, err)
			}
			ts.log.Info("Created category", "name", segment, "parent_id", parentID)
			current = created
		default:
			return uuid.Nil, fmt.Errorf("lookup category %q: %w", segment, err)
		}
		id := current.ID
		parentID = &id
	}

	return current.ID, nil
}

func (ts *taxonomyService) ListCategories(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	categories, err := ts.categoryRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (ts *taxonomyService) DefaultPaths() []string {
	paths := make([]string, 0, len(ts.defaultTree)*4)
	seen := map[string]bool{}
	for root, children := range ts.defaultTree {
		for _, child := range children {
			p := root + PathSeparator + child
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	if !seen[FallbackCategoryPath] {
		paths = append(paths, FallbackCategoryPath)
	}
	sort.Strings(paths)
	return paths
}

func splitCategoryPath(path string) []string {
	parts := strings.Split(path, ">")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments
}

type taxonomyConfig struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadDefaultTree reads a root -> children category map from a YAML file.
// A missing or malformed file falls back to the built-in tree.
func LoadDefaultTree(path string, log *logger.Logger) map[string][]string {
	raw, err := os.ReadFile(path)
	if err != nil {
		if log != nil {
			log.Warn("Taxonomy config not readable, using built-in tree", "path", path, "error", err)
		}
		return builtinCategoryTree
	}
	var cfg taxonomyConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil || len(cfg.Categories) == 0 {
		if log != nil {
			log.Warn("Taxonomy config invalid, using built-in tree", "path", path, "error", err)
		}
		return builtinCategoryTree
	}
	return cfg.Categories
}

var builtinCategoryTree = map[string][]string{
	"Produce":   {"Fruits", "Vegetables", "Herbs"},
	"Meat":      {"Poultry", "Beef", "Pork", "Fish & Seafood"},
	"Dairy":     {"Milk", "Cheese", "Yogurt", "Eggs"},
	"Bakery":    {"Bread", "Pastries"},
	"Pantry":    {"Pasta & Rice", "Canned Goods", "Oils & Vinegars", "Spices", "Snacks", "Sweets"},
	"Beverages": {"Water", "Juice", "Coffee & Tea", "Soft Drinks", "Alcohol"},
	"Frozen":    {"Frozen Meals", "Ice Cream"},
	"Household": {"Cleaning", "Paper Goods", "Laundry"},
	"Personal":  {"Hygiene", "Cosmetics", "Pharmacy"},
	"Pet":       {"Pet Food", "Pet Supplies"},
	"Other":     {"Uncategorized"},
}
