package server

import (
	"net/url"
	"slices"
	"testing"
)

func TestParseQueryValues(t *testing.T) {
	query := url.Values{
		"grid": []string{"variables-main"},
		"flt":  []string{"sector:Tech||Health", "country:SE"},
		"txt":  []string{"name:volt"},
		"sort": []string{"name"},
	}
	sr := &GridQueryRequest{}
	err := gridQueryFromRequestQuery(query, sr)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if sr.GridId != "variables-main" {
		t.Errorf("Expected grid id to be variables-main, got %v", sr.GridId)
	}
	if !slices.Equal(sr.ColumnFilters["sector"], []string{"Tech", "Health"}) {
		t.Errorf("Expected sector filter to be [Tech,Health], got %v", sr.ColumnFilters["sector"])
	}
	if !slices.Equal(sr.ColumnFilters["country"], []string{"SE"}) {
		t.Errorf("Expected country filter to be [SE], got %v", sr.ColumnFilters["country"])
	}
	if sr.TextFilters["name"] != "volt" {
		t.Errorf("Expected text filter to be volt, got %v", sr.TextFilters["name"])
	}
	if sr.Column == nil || sr.Column.Column != "name" {
		t.Errorf("Expected sort column to be name, got %v", sr.Column)
	}
}

func TestParseCustomOrderValues(t *testing.T) {
	query := url.Values{
		"sort":     []string{"status"},
		"sortKind": []string{"custom"},
		"ord":      []string{"Active", "Draft", "Retired"},
	}
	sr := &GridQueryRequest{}
	if err := gridQueryFromRequestQuery(query, sr); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if sr.Column == nil || !sr.Column.IsCustom() {
		t.Fatalf("Expected a custom column sort, got %v", sr.Column)
	}
	if !slices.Equal(sr.Column.CustomOrder, []string{"Active", "Draft", "Retired"}) {
		t.Errorf("Expected custom order kept, got %v", sr.Column.CustomOrder)
	}
}

func TestParseIgnoresMalformedFilters(t *testing.T) {
	query := url.Values{
		"flt": []string{"no-separator", "sector:"},
		"txt": []string{"name:"},
	}
	sr := &GridQueryRequest{}
	if err := gridQueryFromRequestQuery(query, sr); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if len(sr.ColumnFilters) != 0 {
		t.Errorf("Expected malformed filters skipped, got %v", sr.ColumnFilters)
	}
	if len(sr.TextFilters) != 0 {
		t.Errorf("Expected empty text filter skipped, got %v", sr.TextFilters)
	}
}
