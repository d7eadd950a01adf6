package types

type ColumnDescriptor struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Sortable   bool   `json:"sortable,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
	Width      int    `json:"width,omitempty"`
}

// TextFilters maps column key to a case-insensitive substring. An empty
// value is a no-op for that key.
type TextFilters map[string]string

// ColumnFilters maps column key to the chosen set of permitted values.
// An empty or missing set means no restriction for that column.
type ColumnFilters map[string][]string

func (f ColumnFilters) Has(key string) bool {
	return len(f[key]) > 0
}

// WithOut returns the filters minus the restriction for the given column.
// Used when computing a column's own available options so a filter never
// narrows itself.
func (f ColumnFilters) WithOut(key string) ColumnFilters {
	if !f.Has(key) {
		return f
	}
	result := make(ColumnFilters, len(f))
	for k, v := range f {
		if k != key {
			result[k] = v
		}
	}
	return result
}

func (f ColumnFilters) Active() int {
	count := 0
	for _, v := range f {
		if len(v) > 0 {
			count++
		}
	}
	return count
}
