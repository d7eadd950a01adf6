package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// GridQueryRequest is the client side of one grid recomputation. Sort
// rules and the single column sort are optional, the server falls back
// to what is persisted for the grid instance when they are absent.
type GridQueryRequest struct {
	GridId        string                 `json:"gridId" schema:"grid"`
	TextFilters   types.TextFilters      `json:"textFilters" schema:"-"`
	ColumnFilters types.ColumnFilters    `json:"columnFilters" schema:"-"`
	Rules         []types.CustomSortRule `json:"rules" schema:"-"`
	Column        *types.SortConfig      `json:"column" schema:"-"`
}

func GetGridQueryFromRequest(r *http.Request, gridRequest *GridQueryRequest) error {
	if r.Method == http.MethodGet {
		return gridQueryFromRequestQuery(r.URL.Query(), gridRequest)
	}
	return json.NewDecoder(r.Body).Decode(gridRequest)
}

// decodeFiltersFromRequest parses the compact GET filter params:
//
//	flt=sector:Tech||Health  column filter, || separates selected values
//	txt=name:needle          text filter, first colon splits column from text
func decodeFiltersFromRequest(query url.Values, result *GridQueryRequest) {
	for _, v := range query["flt"] {
		parts := strings.SplitN(v, ":", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		if result.ColumnFilters == nil {
			result.ColumnFilters = types.ColumnFilters{}
		}
		if strings.Contains(parts[1], "||") {
			result.ColumnFilters[parts[0]] = strings.Split(parts[1], "||")
		} else {
			result.ColumnFilters[parts[0]] = []string{parts[1]}
		}
	}
	for _, v := range query["txt"] {
		parts := strings.SplitN(v, ":", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		if result.TextFilters == nil {
			result.TextFilters = types.TextFilters{}
		}
		result.TextFilters[parts[0]] = parts[1]
	}
}

func decodeSortFromRequest(query url.Values, result *GridQueryRequest) {
	column := query.Get("sort")
	if column == "" {
		return
	}
	result.Column = &types.SortConfig{
		Column:      column,
		Kind:        query.Get("sortKind"),
		Order:       query.Get("sortOrder"),
		CustomOrder: query["ord"],
	}
}

func gridQueryFromRequestQuery(query url.Values, result *GridQueryRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(result, query); err != nil {
		return err
	}

	decodeFiltersFromRequest(query, result)
	decodeSortFromRequest(query, result)
	return nil
}
