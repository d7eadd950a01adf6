package sorting

import (
	"testing"

	"github.com/sandvall/katalog-grid/pkg/types"
)

func TestHierarchyIndexLookup(t *testing.T) {
	order := &types.PredefinedSortOrder{
		PartOrder:     []string{"B", "A"},
		SectionOrders: map[string][]string{"B": {"Y", "X"}},
		GroupOrders:   map[string][]string{"B|Y": {"G2", "G1"}},
	}
	idx := BuildHierarchyIndex(types.GridVariables, order)
	if idx.Levels() != 4 {
		t.Errorf("Expected 4 levels for variables, got %d", idx.Levels())
	}
	pos, found, hasOrder := idx.Lookup(0, "", "A")
	if !hasOrder || !found || pos != 1 {
		t.Errorf("Expected A at root position 1, got %d %v %v", pos, found, hasOrder)
	}
	pos, found, hasOrder = idx.Lookup(2, "B|Y", "G1")
	if !hasOrder || !found || pos != 1 {
		t.Errorf("Expected G1 at position 1 under B|Y, got %d %v %v", pos, found, hasOrder)
	}
	_, found, hasOrder = idx.Lookup(1, "A", "X")
	if hasOrder || found {
		t.Errorf("Expected no saved order under A")
	}
	_, found, hasOrder = idx.Lookup(1, "B", "Z")
	if !hasOrder || found {
		t.Errorf("Expected unknown value under saved order, got found=%v hasOrder=%v", found, hasOrder)
	}
}

func TestHierarchyIndexFlatKind(t *testing.T) {
	idx := BuildHierarchyIndex(types.GridMetadata, &types.PredefinedSortOrder{})
	if idx.Levels() != 0 {
		t.Errorf("Expected flat metadata hierarchy, got %d levels", idx.Levels())
	}
}
