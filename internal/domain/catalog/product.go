package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MaxAliases caps how many alias spellings a single product may accumulate.
// Additions past the cap are silently dropped.
const MaxAliases = 50

// Product is a canonical catalog entry. Every raw item name that resolves to
// it is recorded in Aliases; the canonical name itself counts as an alias for
// matching purposes even though it lives in its own column.
type Product struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CanonicalName string                      `gorm:"not null;index;column:canonical_name" json:"canonical_name"`
	CategoryID    *uuid.UUID                  `gorm:"type:uuid;index;column:category_id" json:"category_id,omitempty"`
	DefaultUnit   string                      `gorm:"column:default_unit" json:"default_unit,omitempty"`
	Barcode       string                      `gorm:"index;column:barcode" json:"barcode,omitempty"`
	Aliases       datatypes.JSONSlice[string] `gorm:"column:aliases" json:"aliases"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// HasAlias reports whether name already matches the canonical name or one of
// the stored aliases, case-insensitively.
func (p *Product) HasAlias(name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return false
	}
	if strings.ToLower(strings.TrimSpace(p.CanonicalName)) == needle {
		return true
	}
	for _, a := range p.Aliases {
		if strings.ToLower(strings.TrimSpace(a)) == needle {
			return true
		}
	}
	return false
}

// AddAlias appends name to the alias set. It is a no-op when the name is
// blank, already present (case-insensitively, canonical name included), or
// the set is at MaxAliases. Returns true when the alias was actually added.
func (p *Product) AddAlias(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	if p.HasAlias(trimmed) {
		return false
	}
	if len(p.Aliases) >= MaxAliases {
		return false
	}
	p.Aliases = append(p.Aliases, trimmed)
	return true
}
