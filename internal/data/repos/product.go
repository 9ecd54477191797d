package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/db"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error)
	Update(ctx context.Context, tx *gorm.DB, product *types.Product) error
	SearchText(ctx context.Context, tx *gorm.DB, term string, limit int) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(products) == 0 {
		return []*types.Product{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, db.MapError(err)
	}

	return products, nil
}

// ListAll returns the full catalog in a stable order: creation time first,
// id as the final tie-break. The candidate index depends on this order for
// deterministic tie-breaking between equally scored matches.
func (pr *productRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product

	if err := transaction.WithContext(ctx).
		Order("created_at, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product

	if len(productIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) Update(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if product == nil {
		return errors.New("nil product")
	}
	if product.ID == uuid.Nil {
		return pkgerrors.ErrInvalidArgument
	}

	return transaction.WithContext(ctx).Save(product).Error
}

// SearchText runs a case-insensitive substring search for term across
// canonical names, alias lists and category names. Results keep the same
// stable catalog order as ListAll.
func (pr *productRepo) SearchText(ctx context.Context, tx *gorm.DB, term string, limit int) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return []*types.Product{}, nil
	}
	pattern := "%" + strings.ToLower(trimmed) + "%"

	var results []*types.Product

	q := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where(
			"LOWER(products.canonical_name) LIKE ? OR LOWER(CAST(products.aliases AS TEXT)) LIKE ? OR LOWER(categories.name) LIKE ?",
			pattern, pattern, pattern,
		).
		Order("products.created_at, products.id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
