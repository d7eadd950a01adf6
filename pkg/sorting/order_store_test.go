package sorting

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sandvall/katalog-grid/pkg/types"
)

func setupTestStore(t *testing.T) *OrderStore {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	store := NewOrderStoreWithClient(client)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOrderStoreRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	order := &types.PredefinedSortOrder{
		Enabled:       true,
		PartOrder:     []string{"B", "A"},
		SectionOrders: map[string][]string{"B": {"Y"}},
		SectorOrder:   []string{"Tech", "ALL"},
	}
	if err := store.SaveOrder(ctx, order); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	loaded, err := store.loadOrder(ctx)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if !loaded.Enabled || len(loaded.PartOrder) != 2 || loaded.PartOrder[0] != "B" {
		t.Errorf("Expected saved order back, got %+v", loaded)
	}
	if loaded.SectionOrders["B"][0] != "Y" {
		t.Errorf("Expected section orders preserved, got %v", loaded.SectionOrders)
	}
}

func TestOrderStoreClear(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.SaveOrder(ctx, &types.PredefinedSortOrder{Enabled: true}); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	if store.GetOrder() == nil {
		t.Fatalf("Expected order cached after save")
	}
	if err := store.ClearOrder(ctx); err != nil {
		t.Fatalf("Expected clear to succeed, got %v", err)
	}
	if store.GetOrder() != nil {
		t.Errorf("Expected no order after clear")
	}
}

func TestOrderStoreRules(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	rules := []types.CustomSortRule{
		{Id: "r1", Column: "part", Order: types.SortAsc},
		{Id: "r2", Column: "relationships", Order: types.SortDesc},
	}
	if err := store.SaveRules(ctx, "variables-main", rules); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	got := store.GetRules(ctx, "variables-main")
	if len(got) != 2 || got[0].Id != "r1" || got[1].Order != types.SortDesc {
		t.Errorf("Expected rules back in order, got %v", got)
	}
	if err := store.ClearRules(ctx, "variables-main"); err != nil {
		t.Fatalf("Expected clear to succeed, got %v", err)
	}
	if got := store.GetRules(ctx, "variables-main"); len(got) != 0 {
		t.Errorf("Expected no rules after clear, got %v", got)
	}
}

func TestGridConfigRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	config := &types.GridConfig{
		ColumnFilters: types.ColumnFilters{"sector": {"Tech", "ALL"}},
		Widths:        map[string]int{"name": 240},
	}
	if err := store.SaveGridConfig(ctx, "objects-main", config); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	loaded, err := store.LoadGridConfig(ctx, "objects-main")
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if loaded.Widths["name"] != 240 || len(loaded.ColumnFilters["sector"]) != 2 {
		t.Errorf("Expected config back, got %+v", loaded)
	}

	// unknown grid id loads an empty config, not an error
	empty, err := store.LoadGridConfig(ctx, "never-saved")
	if err != nil || empty == nil {
		t.Errorf("Expected empty config, got %v %v", empty, err)
	}
}
