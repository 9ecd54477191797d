package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/data/repos"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type Repos struct {
	Product          repos.ProductRepo
	Category         repos.CategoryRepo
	Store            repos.StoreRepo
	Receipt          repos.ReceiptRepo
	ReceiptItem      repos.ReceiptItemRepo
	ShoppingList     repos.ShoppingListRepo
	ShoppingListItem repos.ShoppingListItemRepo
	Analytics        repos.AnalyticsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Product:          repos.NewProductRepo(db, log),
		Category:         repos.NewCategoryRepo(db, log),
		Store:            repos.NewStoreRepo(db, log),
		Receipt:          repos.NewReceiptRepo(db, log),
		ReceiptItem:      repos.NewReceiptItemRepo(db, log),
		ShoppingList:     repos.NewShoppingListRepo(db, log),
		ShoppingListItem: repos.NewShoppingListItemRepo(db, log),
		Analytics:        repos.NewAnalyticsRepo(db, log),
	}
}
