package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	types "github.com/yungbote/luxtick-backend/internal/domain"
	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type ShoppingListService interface {
	// CreateList creates a named list and resolves every free-text item name
	// to a canonical product within one transaction.
	CreateList(ctx context.Context, userID uuid.UUID, name string, itemNames []string) (*types.ShoppingList, error)
	AddItems(ctx context.Context, listID uuid.UUID, itemNames []string) (*types.ShoppingList, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.ShoppingList, error)
	CheckOffItem(ctx context.Context, itemID uuid.UUID, checked bool) error
}

type shoppingListService struct {
	db           *gorm.DB
	log          *logger.Logger
	listRepo     repos.ShoppingListRepo
	listItemRepo repos.ShoppingListItemRepo
	resolver     ProductResolver
	intelligence ItemIntelligenceService
}

func NewShoppingListService(
	db *gorm.DB,
	baseLog *logger.Logger,
	listRepo repos.ShoppingListRepo,
	listItemRepo repos.ShoppingListItemRepo,
	resolver ProductResolver,
	intelligence ItemIntelligenceService,
) ShoppingListService {
	serviceLog := baseLog.With("service", "ShoppingListService")
	return &shoppingListService{
		db:           db,
		log:          serviceLog,
		listRepo:     listRepo,
		listItemRepo: listItemRepo,
		resolver:     resolver,
		intelligence: intelligence,
	}
}

func (sls *shoppingListService) CreateList(ctx context.Context, userID uuid.UUID, name string, itemNames []string) (*types.ShoppingList, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	listName := strings.TrimSpace(name)
	if listName == "" {
		listName = "Shopping List"
	}

	intel := sls.intelligence.EnrichItems(ctx, itemNames)

	list := &types.ShoppingList{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     listName,
		IsActive: true,
	}

	err := sls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := sls.listRepo.Create(ctx, tx, []*types.ShoppingList{list}); err != nil {
			return fmt.Errorf("create list: %w", err)
		}
		items, err := sls.resolveItems(ctx, tx, list.ID, itemNames, intel)
		if err != nil {
			return err
		}
		list.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	sls.log.Info("Created shopping list", "user_id", userID, "item_count", len(list.Items))
	return list, nil
}

func (sls *shoppingListService) AddItems(ctx context.Context, listID uuid.UUID, itemNames []string) (*types.ShoppingList, error) {
	list, err := sls.listRepo.GetByID(ctx, nil, listID)
	if err != nil {
		return nil, fmt.Errorf("load list: %w", err)
	}

	intel := sls.intelligence.EnrichItems(ctx, itemNames)

	err = sls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := sls.resolveItems(ctx, tx, list.ID, itemNames, intel)
		if err != nil {
			return err
		}
		list.Items = append(list.Items, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (sls *shoppingListService) resolveItems(ctx context.Context, tx *gorm.DB, listID uuid.UUID, itemNames []string, intel map[string]ItemIntelligence) ([]types.ShoppingListItem, error) {
	created := make([]*types.ShoppingListItem, 0, len(itemNames))
	for _, raw := range itemNames {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		var hint *ItemIntelligence
		if h, ok := intel[name]; ok {
			hint = &h
		}
		product, _, err := sls.resolver.Resolve(ctx, tx, name, hint)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}

		productID := product.ID
		created = append(created, &types.ShoppingListItem{
			ID:         uuid.New(),
			ListID:     listID,
			ProductID:  &productID,
			CustomName: name,
			Quantity:   1,
		})
	}

	if _, err := sls.listItemRepo.Create(ctx, tx, created); err != nil {
		return nil, fmt.Errorf("create list items: %w", err)
	}

	items := make([]types.ShoppingListItem, 0, len(created))
	for _, item := range created {
		items = append(items, *item)
	}
	return items, nil
}

func (sls *shoppingListService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.ShoppingList, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	return sls.listRepo.ListByUser(ctx, nil, userID)
}

func (sls *shoppingListService) CheckOffItem(ctx context.Context, itemID uuid.UUID, checked bool) error {
	item, err := sls.listItemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		return fmt.Errorf("load list item: %w", err)
	}
	if item.IsChecked == checked {
		return nil
	}
	item.IsChecked = checked
	return sls.listItemRepo.Update(ctx, nil, item)
}
