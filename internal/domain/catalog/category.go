package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category is one node of the product taxonomy. Parents are assigned once at
// creation along a resolved path and never reassigned, so the tree is
// cycle-free by construction.
type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string     `gorm:"not null;uniqueIndex:idx_categories_name_parent;column:name" json:"name"`
	ParentID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_categories_name_parent;index;column:parent_id" json:"parent_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Category) TableName() string { return "categories" }
