package domain

import (
	"github.com/yungbote/luxtick-backend/internal/domain/catalog"
	"github.com/yungbote/luxtick-backend/internal/domain/purchases"
	"github.com/yungbote/luxtick-backend/internal/domain/shopping"
)

type Product = catalog.Product
type Category = catalog.Category

type Store = purchases.Store
type Receipt = purchases.Receipt
type ReceiptItem = purchases.ReceiptItem

type ShoppingList = shopping.ShoppingList
type ShoppingListItem = shopping.ShoppingListItem

const MaxAliases = catalog.MaxAliases
