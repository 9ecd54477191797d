package purchases

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is a retail store where purchases are made. NormalizedName is the
// dedup key; two receipts from "Lidl" and "LIDL" land on one store row.
type Store struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"not null;column:name" json:"name"`
	NormalizedName string    `gorm:"not null;uniqueIndex;column:normalized_name" json:"normalized_name"`
	StoreType      string    `gorm:"column:store_type" json:"store_type,omitempty"`
	Location       string    `gorm:"column:location" json:"location,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Store) TableName() string { return "stores" }

// NormalizeStoreName lowercases a store name and strips apostrophe variants
// so receipt OCR quirks don't fork store rows.
func NormalizeStoreName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, ch := range []string{"'", "‘", "’"} {
		n = strings.ReplaceAll(n, ch, "")
	}
	return n
}
