package db

import (
	types "github.com/yungbote/luxtick-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Canonical catalog
		// =========================
		&types.Category{},
		&types.Product{},

		// =========================
		// Purchases
		// =========================
		&types.Store{},
		&types.Receipt{},
		&types.ReceiptItem{},

		// =========================
		// Shopping lists
		// =========================
		&types.ShoppingList{},
		&types.ShoppingListItem{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
