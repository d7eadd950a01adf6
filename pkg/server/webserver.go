package server

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/sandvall/katalog-grid/pkg/common"
	"github.com/sandvall/katalog-grid/pkg/filter"
	"github.com/sandvall/katalog-grid/pkg/grid"
	"github.com/sandvall/katalog-grid/pkg/sorting"
	"github.com/sandvall/katalog-grid/pkg/storage"
	"github.com/sandvall/katalog-grid/pkg/tracking"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// ConfigSave is one queued grid config write. Saves flow through a
// SaveQueue so a chatty UI never blocks a recomputation on disk or
// redis.
type ConfigSave struct {
	GridId string
	Config *types.GridConfig
}

type WebServer struct {
	Grids         map[types.GridKind]*grid.Index
	Order         *sorting.OrderStore
	Db            *storage.DiskStorage
	ConfigSaves   *common.SaveQueue[ConfigSave]
	ListenAddress string
}

type GridQueryResponse struct {
	grid.Result
	Affected *types.AffectedSet `json:"affected,omitempty"`
}

func (ws *WebServer) gridFromRequest(r *http.Request) (*grid.Index, bool) {
	g, ok := ws.Grids[types.GridKind(r.PathValue("kind"))]
	return g, ok
}

// QueryGrid runs the full pipeline for one grid: filters from the
// request, predefined order and saved rules from the order store, the
// affected set from the index.
func (ws *WebServer) QueryGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method == "OPTIONS" {
		common.RespondToOptions(w, r)
		return
	}
	g, ok := ws.gridFromRequest(r)
	if !ok {
		http.Error(w, "unknown grid kind", http.StatusNotFound)
		return
	}
	gridRequest := &GridQueryRequest{}
	if err := GetGridQueryFromRequest(r, gridRequest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if gridRequest.GridId == "" {
		gridRequest.GridId = string(g.Kind())
	}

	state := &types.SortState{
		Rules:  gridRequest.Rules,
		Column: gridRequest.Column,
	}
	if ws.Order != nil {
		state.Predefined = ws.Order.GetOrder()
		if state.Rules == nil {
			state.Rules = ws.Order.GetRules(r.Context(), gridRequest.GridId)
		}
	}

	affected := g.Affected()
	start := time.Now()
	result := grid.Recompute(grid.Snapshot{
		Kind:          g.Kind(),
		Rows:          g.Rows(),
		Columns:       g.Columns(),
		Reference:     g.Reference(),
		TextFilters:   gridRequest.TextFilters,
		ColumnFilters: gridRequest.ColumnFilters,
		Affected:      affected,
		Sort:          state,
	})
	kind := string(g.Kind())
	tracking.RecomputeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	tracking.RecomputeRowsOut.WithLabelValues(kind).Observe(float64(len(result.Rows)))

	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(GridQueryResponse{
		Result:   result,
		Affected: affected,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GridOptions returns only the narrowed dropdown options, for the UI
// refreshing a single filter popover without pulling rows.
func (ws *WebServer) GridOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method == "OPTIONS" {
		common.RespondToOptions(w, r)
		return
	}
	g, ok := ws.gridFromRequest(r)
	if !ok {
		http.Error(w, "unknown grid kind", http.StatusNotFound)
		return
	}
	gridRequest := &GridQueryRequest{}
	if err := GetGridQueryFromRequest(r, gridRequest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := filter.ApplyTextFilters(g.Rows(), gridRequest.TextFilters)
	options := filter.AvailableOptions(rows, gridRequest.ColumnFilters, g.Columns(), g.Reference())

	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(options); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) UpsertRows(w http.ResponseWriter, r *http.Request) {
	g, ok := ws.gridFromRequest(r)
	if !ok {
		http.Error(w, "unknown grid kind", http.StatusNotFound)
		return
	}
	rows := []*types.DataRow{}
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, row := range rows {
		storage.NormalizeRow(row)
	}
	g.UpsertRows(rows...)
	tracking.TotalRows.WithLabelValues(string(g.Kind())).Set(float64(g.Len()))
	w.WriteHeader(http.StatusOK)
}

func (ws *WebServer) DeleteRows(w http.ResponseWriter, r *http.Request) {
	g, ok := ws.gridFromRequest(r)
	if !ok {
		http.Error(w, "unknown grid kind", http.StatusNotFound)
		return
	}
	ids := []types.RowId{}
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, id := range ids {
		g.DeleteRow(id)
	}
	tracking.TotalRows.WithLabelValues(string(g.Kind())).Set(float64(g.Len()))
	w.WriteHeader(http.StatusOK)
}

// GetAffected exposes the pending affected set so the UI can render the
// deletion banner and mask the removed driver dimension.
func (ws *WebServer) GetAffected(w http.ResponseWriter, r *http.Request) {
	g, ok := ws.gridFromRequest(r)
	if !ok {
		http.Error(w, "unknown grid kind", http.StatusNotFound)
		return
	}
	affected := g.Affected()
	if affected == nil {
		http.Error(w, "no pending deletion", http.StatusNotFound)
		return
	}
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(affected); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) Handler(enableProfiling bool) *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv.HandleFunc("/grids/{kind}/query", ws.QueryGrid)
	srv.HandleFunc("/grids/{kind}/options", ws.GridOptions)
	srv.HandleFunc("POST /grids/{kind}/rows", ws.UpsertRows)
	srv.HandleFunc("DELETE /grids/{kind}/rows", ws.DeleteRows)
	srv.HandleFunc("GET /grids/{kind}/affected", ws.GetAffected)
	if enableProfiling {
		srv.HandleFunc("/debug/pprof/", pprof.Index)
		srv.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		srv.HandleFunc("/debug/pprof/profile", pprof.Profile)
		srv.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		srv.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return srv
}

func (ws *WebServer) StartServer(enableProfiling bool) error {
	return http.ListenAndServe(ws.ListenAddress, ws.Handler(enableProfiling))
}
