package types

import (
	"sort"
	"strconv"
	"strings"
)

type RowId uint32

// Row is the indexable surface the engine works against. Grid kinds supply
// their own backing schema; the engine only reads fields by key.
type Row interface {
	GetId() RowId
	GetField(key string) any
	FieldKeys() []string
}

// DataRow is the generic row carried over the wire and held by the grid
// index. Missing fields read as nil, comparators downgrade nil to "".
type DataRow struct {
	Id     RowId          `json:"id"`
	Fields map[string]any `json:"fields"`
}

func (r *DataRow) GetId() RowId {
	return r.Id
}

func (r *DataRow) GetField(key string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[key]
}

func (r *DataRow) FieldKeys() []string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *DataRow) SetField(key string, value any) {
	if r.Fields == nil {
		r.Fields = make(map[string]any)
	}
	r.Fields[key] = value
}

// FieldString renders a row field for display and text matching. Lists are
// joined with ", " to match the persisted comma-string form.
func FieldString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []string:
		return strings.Join(typed, ", ")
	case []any:
		parts := make([]string, 0, len(typed))
		for _, v := range typed {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// FieldNumber coerces a row field for numeric comparison, non-numeric
// values count as zero.
func FieldNumber(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
