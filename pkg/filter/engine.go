package filter

import (
	"strings"

	"github.com/sandvall/katalog-grid/pkg/driver"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// ApplyTextFilters keeps rows whose rendered field value contains the
// filter substring, case-insensitively. Empty filter values are no-ops.
// Filtering never reorders rows.
func ApplyTextFilters(rows []types.Row, filters types.TextFilters) []types.Row {
	active := make(map[string]string, len(filters))
	for key, needle := range filters {
		if needle != "" {
			active[key] = strings.ToLower(needle)
		}
	}
	if len(active) == 0 {
		return rows
	}
	result := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		if matchesText(row, active) {
			result = append(result, row)
		}
	}
	return result
}

func matchesText(row types.Row, active map[string]string) bool {
	for key, needle := range active {
		value := strings.ToLower(types.FieldString(row.GetField(key)))
		if !strings.Contains(value, needle) {
			return false
		}
	}
	return true
}

// ApplyColumnFilters keeps rows matching every active multi-select
// filter. Driver columns get the ALL handling: a row covering every
// value matches any concrete selection, and selecting "ALL" matches
// only rows that are themselves ALL.
func ApplyColumnFilters(rows []types.Row, filters types.ColumnFilters, reference *types.ReferenceValues) []types.Row {
	if filters.Active() == 0 {
		return rows
	}
	result := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		if MatchesColumnFilters(row, filters, reference) {
			result = append(result, row)
		}
	}
	return result
}

func MatchesColumnFilters(row types.Row, filters types.ColumnFilters, reference *types.ReferenceValues) bool {
	for key, allowed := range filters {
		if len(allowed) == 0 {
			continue
		}
		if types.IsDriverColumn(key) {
			if !matchDriverColumn(row.GetField(key), allowed, reference.ForColumn(key)) {
				return false
			}
			continue
		}
		if !contains(allowed, types.FieldString(row.GetField(key))) {
			return false
		}
	}
	return true
}

func matchDriverColumn(value any, allowed []string, reference []string) bool {
	values := driver.FieldValues(value)
	isAll := driver.ClassifyValues(values, reference) == driver.ClassAll
	if contains(allowed, driver.All) && isAll {
		return true
	}
	// an ALL row is universally applicable
	if isAll && hasConcrete(allowed) {
		return true
	}
	for _, v := range values {
		if contains(allowed, v) {
			return true
		}
	}
	return false
}

func hasConcrete(allowed []string) bool {
	for _, v := range allowed {
		if v != driver.All {
			return true
		}
	}
	return false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
