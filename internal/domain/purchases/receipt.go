package purchases

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is a purchase event linking a user to a store on a given date.
type Receipt struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	StoreID      *uuid.UUID `gorm:"type:uuid;index;column:store_id" json:"store_id,omitempty"`
	PurchaseDate time.Time  `gorm:"not null;column:purchase_date" json:"purchase_date"`
	TotalAmount  float64    `gorm:"not null;column:total_amount" json:"total_amount"`
	Currency     string     `gorm:"not null;default:'EUR';column:currency" json:"currency"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Receipt) TableName() string { return "receipts" }

// ReceiptItem is one line of a receipt. NameOnReceipt keeps the raw scanned
// text; ProductID points at the canonical product it resolved to.
type ReceiptItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptID     uuid.UUID  `gorm:"type:uuid;not null;index;column:receipt_id" json:"receipt_id"`
	ProductID     *uuid.UUID `gorm:"type:uuid;index;column:product_id" json:"product_id,omitempty"`
	NameOnReceipt string     `gorm:"not null;column:name_on_receipt" json:"name_on_receipt"`
	Quantity      float64    `gorm:"not null;default:1;column:quantity" json:"quantity"`
	Unit          string     `gorm:"column:unit" json:"unit,omitempty"`
	UnitPrice     float64    `gorm:"not null;column:unit_price" json:"unit_price"`
	TotalPrice    float64    `gorm:"not null;column:total_price" json:"total_price"`
}

func (ReceiptItem) TableName() string { return "receipt_items" }
