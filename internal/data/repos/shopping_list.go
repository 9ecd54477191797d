package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/luxtick-backend/internal/domain"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type ShoppingListRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lists []*types.ShoppingList) ([]*types.ShoppingList, error)
	GetByID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (*types.ShoppingList, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ShoppingList, error)
}

type shoppingListRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShoppingListRepo(db *gorm.DB, baseLog *logger.Logger) ShoppingListRepo {
	repoLog := baseLog.With("repo", "ShoppingListRepo")
	return &shoppingListRepo{db: db, log: repoLog}
}

func (slr *shoppingListRepo) Create(ctx context.Context, tx *gorm.DB, lists []*types.ShoppingList) ([]*types.ShoppingList, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}

	if len(lists) == 0 {
		return []*types.ShoppingList{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&lists).Error; err != nil {
		return nil, err
	}

	return lists, nil
}

func (slr *shoppingListRepo) GetByID(ctx context.Context, tx *gorm.DB, listID uuid.UUID) (*types.ShoppingList, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}

	var result types.ShoppingList
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("id = ?", listID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (slr *shoppingListRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ShoppingList, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}

	var results []*types.ShoppingList
	if err := transaction.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type ShoppingListItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.ShoppingListItem) ([]*types.ShoppingListItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.ShoppingListItem, error)
	Update(ctx context.Context, tx *gorm.DB, item *types.ShoppingListItem) error
}

type shoppingListItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShoppingListItemRepo(db *gorm.DB, baseLog *logger.Logger) ShoppingListItemRepo {
	repoLog := baseLog.With("repo", "ShoppingListItemRepo")
	return &shoppingListItemRepo{db: db, log: repoLog}
}

func (slir *shoppingListItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.ShoppingListItem) ([]*types.ShoppingListItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = slir.db
	}

	if len(items) == 0 {
		return []*types.ShoppingListItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (slir *shoppingListItemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.ShoppingListItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = slir.db
	}

	var result types.ShoppingListItem
	if err := transaction.WithContext(ctx).
		Where("id = ?", itemID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (slir *shoppingListItemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.ShoppingListItem) error {
	transaction := tx
	if transaction == nil {
		transaction = slir.db
	}

	if item == nil || item.ID == uuid.Nil {
		return pkgerrors.ErrInvalidArgument
	}

	return transaction.WithContext(ctx).Save(item).Error
}
