package grid

import (
	"slices"
	"testing"

	"github.com/sandvall/katalog-grid/pkg/types"
)

func reconcileTestGrids() map[types.GridKind]*Index {
	g := NewIndex(types.GridVariables, nil)
	g.UpsertRows(
		&types.DataRow{Id: 1, Fields: map[string]any{"part": "B", "section": "Y", "group": "G1", "variable": "v1", "sector": []string{"Tech"}}},
		&types.DataRow{Id: 2, Fields: map[string]any{"part": "A", "section": "X", "group": "G2", "variable": "v2", "sector": []string{"Health"}}},
		&types.DataRow{Id: 3, Fields: map[string]any{"part": "B", "section": "Z", "group": "G3", "variable": "v3", "sector": []string{"ALL"}}},
	)
	return map[types.GridKind]*Index{types.GridVariables: g}
}

func TestReconcileKeepsSavedPositions(t *testing.T) {
	saved := &types.PredefinedSortOrder{
		Enabled:   true,
		PartOrder: []string{"A", "Gone", "B"},
	}
	result := ReconcilePredefined(saved, reconcileTestGrids())
	if !result.Enabled {
		t.Errorf("Expected enabled flag kept")
	}
	if !slices.Equal(result.PartOrder, []string{"A", "B"}) {
		t.Errorf("Expected [A B], got %v", result.PartOrder)
	}
}

func TestReconcileAppendsNewValues(t *testing.T) {
	saved := &types.PredefinedSortOrder{
		PartOrder:     []string{"A"},
		SectionOrders: map[string][]string{"B": {"Z"}},
	}
	result := ReconcilePredefined(saved, reconcileTestGrids())
	if !slices.Equal(result.PartOrder, []string{"A", "B"}) {
		t.Errorf("Expected new part appended, got %v", result.PartOrder)
	}
	// saved Z stays first, newly seen Y appends
	if !slices.Equal(result.SectionOrders["B"], []string{"Z", "Y"}) {
		t.Errorf("Expected [Z Y] under B, got %v", result.SectionOrders["B"])
	}
	if !slices.Equal(result.SectionOrders["A"], []string{"X"}) {
		t.Errorf("Expected [X] under A, got %v", result.SectionOrders["A"])
	}
}

func TestReconcileDriverOrderKeepsSentinel(t *testing.T) {
	saved := &types.PredefinedSortOrder{
		SectorOrder: []string{"Tech", "ALL", "Removed"},
	}
	result := ReconcilePredefined(saved, reconcileTestGrids())
	if !slices.Equal(result.SectorOrder, []string{"Tech", "ALL", "Health"}) {
		t.Errorf("Expected [Tech ALL Health], got %v", result.SectorOrder)
	}
}

func TestReconcileWithoutGridsIsIdentity(t *testing.T) {
	saved := &types.PredefinedSortOrder{
		Enabled:    true,
		BeingOrder: []string{"Human", "Company"},
	}
	result := ReconcilePredefined(saved, map[types.GridKind]*Index{})
	if !slices.Equal(result.BeingOrder, saved.BeingOrder) {
		t.Errorf("Expected saved order untouched, got %v", result.BeingOrder)
	}
}
