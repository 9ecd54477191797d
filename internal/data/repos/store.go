package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/db"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type StoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stores []*types.Store) ([]*types.Store, error)
	GetByNormalizedName(ctx context.Context, tx *gorm.DB, normalizedName string) (*types.Store, error)
}

type storeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoreRepo(db *gorm.DB, baseLog *logger.Logger) StoreRepo {
	repoLog := baseLog.With("repo", "StoreRepo")
	return &storeRepo{db: db, log: repoLog}
}

func (sr *storeRepo) Create(ctx context.Context, tx *gorm.DB, stores []*types.Store) ([]*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(stores) == 0 {
		return []*types.Store{}, nil
	}

	// Concurrent find-or-create on the same normalized name hits the unique
	// index; the caller sees ErrConflict and can retry the lookup.
	if err := transaction.WithContext(ctx).Create(&stores).Error; err != nil {
		return nil, db.MapError(err)
	}

	return stores, nil
}

func (sr *storeRepo) GetByNormalizedName(ctx context.Context, tx *gorm.DB, normalizedName string) (*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Store
	if err := transaction.WithContext(ctx).
		Where("normalized_name = ?", normalizedName).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}
