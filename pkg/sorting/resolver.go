package sorting

import (
	"cmp"
	"slices"

	"github.com/sandvall/katalog-grid/pkg/driver"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// ResolveMode collapses the persisted sort state into the single active
// mode. Precedence: custom rules, then predefined order, then single
// column sort, then none. The editors keep rules and predefined order
// mutually exclusive, the resolver just checks rules first.
func ResolveMode(state *types.SortState, kind types.GridKind) types.SortMode {
	if state == nil {
		return types.SortMode{Kind: types.SortModeNone}
	}
	if len(state.Rules) > 0 {
		return types.SortMode{Kind: types.SortModeCustomRules, Rules: state.Rules}
	}
	if state.Predefined.ActiveFor(kind) {
		return types.SortMode{Kind: types.SortModePredefined, Predefined: state.Predefined}
	}
	if state.Column.IsCustom() {
		return types.SortMode{Kind: types.SortModeColumn, Column: state.Column}
	}
	return types.SortMode{Kind: types.SortModeNone}
}

// Resolver produces the final row ordering for one grid kind. When an
// affected set is present, affected rows stay above the rest regardless
// of the active mode; the mode only orders within each partition.
type Resolver struct {
	Kind      types.GridKind
	Reference *types.ReferenceValues
	Affected  *types.AffectedSet
}

// Sort returns a new ordered slice, never mutating its input. The sort
// is stable: ties keep the incoming (prioritized) order, so repeated
// invocation with the same inputs is byte-identical.
func (r *Resolver) Sort(rows []types.Row, mode types.SortMode) []types.Row {
	var compare func(a, b types.Row) int
	switch mode.Kind {
	case types.SortModeCustomRules:
		rules := mode.Rules
		compare = func(a, b types.Row) int {
			return CompareByRules(a, b, rules)
		}
	case types.SortModePredefined:
		compare = r.predefinedComparator(mode.Predefined)
	case types.SortModeColumn:
		compare = r.columnComparator(mode.Column)
	default:
		return rows
	}
	if !r.Affected.IsEmpty() {
		inner := compare
		affected := r.Affected
		compare = func(a, b types.Row) int {
			ca, cb := affected.Contains(a.GetId()), affected.Contains(b.GetId())
			if ca != cb {
				if ca {
					return -1
				}
				return 1
			}
			return inner(a, b)
		}
	}
	result := make([]types.Row, len(rows))
	copy(result, rows)
	slices.SortStableFunc(result, compare)
	return result
}

// predefinedComparator walks the hierarchy level by level and then
// chains into the flat sector, domain and country orders.
func (r *Resolver) predefinedComparator(order *types.PredefinedSortOrder) func(a, b types.Row) int {
	idx := BuildHierarchyIndex(r.Kind, order)
	return func(a, b types.Row) int {
		parentKey := ""
		for level := 0; level < idx.Levels(); level++ {
			field := idx.Field(level)
			av := types.FieldString(a.GetField(field))
			bv := types.FieldString(b.GetField(field))
			if c := compareAtLevel(idx, level, parentKey, av, bv); c != 0 {
				return c
			}
			// equal at this level implies the same value, descend
			if level == 0 {
				parentKey = av
			} else {
				parentKey = types.PathKey(parentKey, av)
			}
		}
		for _, column := range []string{types.ColumnSector, types.ColumnDomain, types.ColumnCountry} {
			flat := order.DriverOrder(column)
			if len(flat) == 0 {
				continue
			}
			ref := r.Reference.ForColumn(column)
			ka := driver.SortKeyValues(driver.FieldValues(a.GetField(column)), flat, ref)
			kb := driver.SortKeyValues(driver.FieldValues(b.GetField(column)), flat, ref)
			if c := cmp.Compare(ka, kb); c != 0 {
				return c
			}
		}
		return 0
	}
}

func compareAtLevel(idx *HierarchicalOrderIndex, level int, parentKey, av, bv string) int {
	posA, foundA, hasOrder := idx.Lookup(level, parentKey, av)
	posB, foundB, _ := idx.Lookup(level, parentKey, bv)
	if !hasOrder {
		// no saved sub-order for this parent, alphabetical default
		return CompareStrings(av, bv)
	}
	switch {
	case foundA && foundB:
		return cmp.Compare(posA, posB)
	case foundA:
		return -1
	case foundB:
		return 1
	}
	return CompareStrings(av, bv)
}

// columnComparator orders one column by an explicit value list. Driver
// columns look up only the first individual value of a multi-valued
// cell. Values absent from the list sort after every present value,
// alphabetically between themselves.
func (r *Resolver) columnComparator(config *types.SortConfig) func(a, b types.Row) int {
	column := config.Column
	isDriver := types.IsDriverColumn(column)
	positions := make(map[string]int, len(config.CustomOrder))
	for i, v := range config.CustomOrder {
		if _, ok := positions[v]; !ok {
			positions[v] = i
		}
	}
	keyOf := func(row types.Row) string {
		if isDriver {
			values := driver.FieldValues(row.GetField(column))
			if len(values) == 0 {
				return ""
			}
			return values[0]
		}
		return types.FieldString(row.GetField(column))
	}
	return func(a, b types.Row) int {
		av, bv := keyOf(a), keyOf(b)
		posA, okA := positions[av]
		posB, okB := positions[bv]
		switch {
		case okA && okB:
			return cmp.Compare(posA, posB)
		case okA:
			return -1
		case okB:
			return 1
		}
		return CompareStrings(av, bv)
	}
}
