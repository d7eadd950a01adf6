package types

import (
	"slices"
	"testing"
)

func TestReconcileKeepsSavedRelativeOrder(t *testing.T) {
	saved := []string{"C", "A", "B"}
	current := []string{"A", "B", "C"}
	if got := ReconcileOrder(saved, current); !slices.Equal(got, saved) {
		t.Errorf("Expected saved order kept, got %v", got)
	}
}

func TestReconcileAppendsNewValues(t *testing.T) {
	got := ReconcileOrder([]string{"B", "A"}, []string{"A", "B", "C", "D"})
	if !slices.Equal(got, []string{"B", "A", "C", "D"}) {
		t.Errorf("Expected new values appended, got %v", got)
	}
}

func TestReconcileDropsRemovedValues(t *testing.T) {
	got := ReconcileOrder([]string{"B", "gone", "A"}, []string{"A", "B"})
	if !slices.Equal(got, []string{"B", "A"}) {
		t.Errorf("Expected removed value dropped, got %v", got)
	}
}

func TestReconcileKeepsSentinel(t *testing.T) {
	got := ReconcileOrder([]string{"B", "ALL", "A"}, []string{"A", "B"})
	if !slices.Equal(got, []string{"B", "ALL", "A"}) {
		t.Errorf("Expected sentinel kept in place, got %v", got)
	}
}

func TestActiveFor(t *testing.T) {
	var none *PredefinedSortOrder
	if none.ActiveFor(GridVariables) {
		t.Errorf("Expected nil order inactive")
	}
	order := &PredefinedSortOrder{PartOrder: []string{"A"}}
	if order.ActiveFor(GridVariables) {
		t.Errorf("Expected disabled order inactive")
	}
	order.Enabled = true
	if !order.ActiveFor(GridVariables) {
		t.Errorf("Expected enabled order with root active")
	}
	if order.ActiveFor(GridLists) {
		t.Errorf("Expected lists inactive without set order")
	}
	order.CountryOrder = []string{"SE"}
	if !order.ActiveFor(GridMetadata) {
		t.Errorf("Expected metadata active on flat driver order")
	}
}

func TestPathKey(t *testing.T) {
	if got := PathKey("PartA", "SectionB"); got != "PartA|SectionB" {
		t.Errorf("Expected PartA|SectionB, got %q", got)
	}
}
