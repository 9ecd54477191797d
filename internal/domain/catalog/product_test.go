package catalog

import (
	"fmt"
	"testing"
)

func TestHasAlias(t *testing.T) {
	p := &Product{CanonicalName: "Chicken Breast", Aliases: []string{"PECH POLLO"}}

	tests := []struct {
		name string
		want bool
	}{
		{"Chicken Breast", true},
		{"chicken breast", true},
		{"  CHICKEN BREAST  ", true},
		{"pech pollo", true},
		{"PECH POLLO", true},
		{"pollo", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := p.HasAlias(tt.name); got != tt.want {
			t.Fatalf("HasAlias(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAddAlias(t *testing.T) {
	p := &Product{CanonicalName: "Chicken Breast"}

	if !p.AddAlias("pechuga de pollo") {
		t.Fatalf("first alias must be added")
	}
	if p.AddAlias("PECHUGA DE POLLO") {
		t.Fatalf("case variant must be a no-op")
	}
	if p.AddAlias("chicken breast") {
		t.Fatalf("canonical name variant must be a no-op")
	}
	if p.AddAlias("  ") {
		t.Fatalf("blank alias must be a no-op")
	}
	if len(p.Aliases) != 1 {
		t.Fatalf("alias list = %v", p.Aliases)
	}
}

func TestAddAliasPreservesInsertionOrder(t *testing.T) {
	p := &Product{CanonicalName: "Milk"}
	names := []string{"leche entera", "whole milk", "milch"}
	for _, n := range names {
		p.AddAlias(n)
	}
	for i, n := range names {
		if p.Aliases[i] != n {
			t.Fatalf("alias order changed: %v", p.Aliases)
		}
	}
}

func TestAddAliasCap(t *testing.T) {
	p := &Product{CanonicalName: "Milk"}
	for i := 0; i < MaxAliases; i++ {
		if !p.AddAlias(fmt.Sprintf("alias-%d", i)) {
			t.Fatalf("alias %d rejected before the cap", i)
		}
	}
	if p.AddAlias("one-too-many") {
		t.Fatalf("alias past the cap must be dropped")
	}
	if len(p.Aliases) != MaxAliases {
		t.Fatalf("alias count = %d, want %d", len(p.Aliases), MaxAliases)
	}
	// Existing aliases still match after the cap is hit.
	if !p.HasAlias("alias-0") {
		t.Fatalf("existing alias lost")
	}
}
