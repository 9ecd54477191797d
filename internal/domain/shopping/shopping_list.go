package shopping

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingList is a named list of items a user plans to buy.
type ShoppingList struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	IsActive bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Items []ShoppingListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (ShoppingList) TableName() string { return "shopping_lists" }

// ShoppingListItem keeps both the free-text name the user typed and the
// canonical product it resolved to.
type ShoppingListItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ListID     uuid.UUID  `gorm:"type:uuid;not null;index;column:list_id" json:"list_id"`
	ProductID  *uuid.UUID `gorm:"type:uuid;index;column:product_id" json:"product_id,omitempty"`
	CustomName string     `gorm:"column:custom_name" json:"custom_name,omitempty"`
	Quantity   float64    `gorm:"not null;default:1;column:quantity" json:"quantity"`
	Unit       string     `gorm:"column:unit" json:"unit,omitempty"`
	IsChecked  bool       `gorm:"not null;default:false;column:is_checked" json:"is_checked"`
	Notes      string     `gorm:"column:notes" json:"notes,omitempty"`
}

func (ShoppingListItem) TableName() string { return "shopping_list_items" }
