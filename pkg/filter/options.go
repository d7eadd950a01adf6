package filter

import (
	"sort"

	"github.com/sandvall/katalog-grid/pkg/driver"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// AvailableOptions computes, per filterable column, the distinct filter
// options still reachable given every *other* active column filter. A
// column never narrows its own options. Driver fields split into atoms,
// with ALL itself a selectable atom. Options sort lexicographically.
func AvailableOptions(rows []types.Row, filters types.ColumnFilters, columns []types.ColumnDescriptor, reference *types.ReferenceValues) map[string][]string {
	result := make(map[string][]string, len(columns))
	for _, col := range columns {
		if !col.Filterable {
			continue
		}
		narrowed := ApplyColumnFilters(rows, filters.WithOut(col.Key), reference)
		result[col.Key] = collectOptions(narrowed, col.Key, reference)
	}
	return result
}

func collectOptions(rows []types.Row, key string, reference *types.ReferenceValues) []string {
	distinct := make(map[string]struct{})
	isDriver := types.IsDriverColumn(key)
	ref := reference.ForColumn(key)
	for _, row := range rows {
		value := row.GetField(key)
		if isDriver {
			values := driver.FieldValues(value)
			if driver.ClassifyValues(values, ref) == driver.ClassAll {
				distinct[driver.All] = struct{}{}
				continue
			}
			for _, v := range values {
				distinct[v] = struct{}{}
			}
			continue
		}
		if s := types.FieldString(value); s != "" {
			distinct[s] = struct{}{}
		}
	}
	options := make([]string, 0, len(distinct))
	for v := range distinct {
		options = append(options, v)
	}
	sort.Strings(options)
	return options
}
