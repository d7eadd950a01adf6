package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandvall/katalog-grid/pkg/grid"
	"github.com/sandvall/katalog-grid/pkg/types"
)

func newTestServer() (*WebServer, *http.ServeMux) {
	columns := []types.ColumnDescriptor{
		{Key: "name", Title: "Name", Sortable: true, Filterable: true},
		{Key: types.ColumnSector, Title: "Sector", Sortable: true, Filterable: true},
	}
	g := grid.NewIndex(types.GridVariables, columns)
	g.UpsertRows(
		&types.DataRow{Id: 1, Fields: map[string]any{"name": "voltage", "sector": []string{"Tech"}}},
		&types.DataRow{Id: 2, Fields: map[string]any{"name": "income", "sector": []string{"Finance"}}},
		&types.DataRow{Id: 3, Fields: map[string]any{"name": "pulse", "sector": []string{"ALL"}}},
	)
	ws := &WebServer{
		Grids: map[types.GridKind]*grid.Index{types.GridVariables: g},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/grids/{kind}/query", ws.QueryGrid)
	mux.HandleFunc("/grids/{kind}/options", ws.GridOptions)
	mux.HandleFunc("POST /grids/{kind}/rows", ws.UpsertRows)
	return ws, mux
}

func TestQueryGridFiltersRows(t *testing.T) {
	_, mux := newTestServer()
	r := httptest.NewRequest(http.MethodGet, "/grids/variables/query?flt=sector:Tech", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := struct {
		Rows []struct {
			Id types.RowId `json:"id"`
		} `json:"rows"`
		TotalRows int `json:"totalRows"`
	}{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Expected valid json, got %v", err)
	}
	// the ALL row matches any concrete sector filter
	if len(response.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(response.Rows))
	}
	if response.TotalRows != 3 {
		t.Errorf("Expected total of 3, got %d", response.TotalRows)
	}
}

func TestQueryGridUnknownKind(t *testing.T) {
	_, mux := newTestServer()
	r := httptest.NewRequest(http.MethodGet, "/grids/nope/query", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestQueryGridPostBody(t *testing.T) {
	_, mux := newTestServer()
	body := `{"textFilters":{"name":"vol"}}`
	r := httptest.NewRequest(http.MethodPost, "/grids/variables/query", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := struct {
		Rows []struct {
			Id types.RowId `json:"id"`
		} `json:"rows"`
	}{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Expected valid json, got %v", err)
	}
	if len(response.Rows) != 1 || response.Rows[0].Id != 1 {
		t.Errorf("Expected only the voltage row, got %v", response.Rows)
	}
}

func TestGridOptionsNarrowing(t *testing.T) {
	_, mux := newTestServer()
	r := httptest.NewRequest(http.MethodGet, "/grids/variables/options?txt=name:e", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	options := map[string][]string{}
	if err := json.NewDecoder(w.Body).Decode(&options); err != nil {
		t.Fatalf("Expected valid json, got %v", err)
	}
	if len(options["name"]) != 3 {
		t.Errorf("Expected 3 name options, got %v", options["name"])
	}
}

func TestUpsertRowsNormalizesDrivers(t *testing.T) {
	ws, mux := newTestServer()
	body := `[{"id":9,"fields":{"name":"fresh","sector":"Tech,Health"}}]`
	r := httptest.NewRequest(http.MethodPost, "/grids/variables/rows", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	g := ws.Grids[types.GridVariables]
	if g.Len() != 4 {
		t.Fatalf("Expected 4 rows, got %d", g.Len())
	}
	for _, row := range g.Rows() {
		if row.GetId() != 9 {
			continue
		}
		sector, ok := row.GetField("sector").([]string)
		if !ok || len(sector) != 2 {
			t.Errorf("Expected normalized sector list, got %v", row.GetField("sector"))
		}
	}
}
