package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/db"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error)
	GetByNameAndParent(ctx context.Context, tx *gorm.DB, name string, parentID *uuid.UUID) (*types.Category, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (cr *categoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(categories) == 0 {
		return []*types.Category{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, db.MapError(err)
	}

	return categories, nil
}

func (cr *categoryRepo) GetByNameAndParent(ctx context.Context, tx *gorm.DB, name string, parentID *uuid.UUID) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	q := transaction.WithContext(ctx).Where("name = ?", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	var result types.Category
	if err := q.First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (cr *categoryRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Order("created_at, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Category{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
