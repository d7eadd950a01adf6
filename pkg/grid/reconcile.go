package grid

import (
	"sort"

	"github.com/sandvall/katalog-grid/pkg/types"
)

// ReconcilePredefined merges a saved predefined order with the values
// currently present in the grids. Saved entries keep their relative
// order, values that disappeared drop out, newly discovered values
// append at the end in base row order. Grids without an index keep
// their saved lists untouched.
func ReconcilePredefined(order *types.PredefinedSortOrder, grids map[types.GridKind]*Index) *types.PredefinedSortOrder {
	if order == nil {
		order = &types.PredefinedSortOrder{}
	}
	result := &types.PredefinedSortOrder{Enabled: order.Enabled}

	if g, ok := grids[types.GridVariables]; ok {
		levels := currentHierarchy(g)
		result.PartOrder = types.ReconcileOrder(order.PartOrder, levels[0][""])
		result.SectionOrders = reconcileLevel(order.SectionOrders, levels[1])
		result.GroupOrders = reconcileLevel(order.GroupOrders, levels[2])
		result.VariableOrders = reconcileLevel(order.VariableOrders, levels[3])
	} else {
		result.PartOrder = order.PartOrder
		result.SectionOrders = order.SectionOrders
		result.GroupOrders = order.GroupOrders
		result.VariableOrders = order.VariableOrders
	}

	if g, ok := grids[types.GridObjects]; ok {
		levels := currentHierarchy(g)
		result.BeingOrder = types.ReconcileOrder(order.BeingOrder, levels[0][""])
		result.AvatarOrders = reconcileLevel(order.AvatarOrders, levels[1])
		result.ObjectOrders = reconcileLevel(order.ObjectOrders, levels[2])
	} else {
		result.BeingOrder = order.BeingOrder
		result.AvatarOrders = order.AvatarOrders
		result.ObjectOrders = order.ObjectOrders
	}

	if g, ok := grids[types.GridLists]; ok {
		levels := currentHierarchy(g)
		result.SetOrder = types.ReconcileOrder(order.SetOrder, levels[0][""])
		result.GroupingOrders = reconcileLevel(order.GroupingOrders, levels[1])
		result.ListOrders = reconcileLevel(order.ListOrders, levels[2])
	} else {
		result.SetOrder = order.SetOrder
		result.GroupingOrders = order.GroupingOrders
		result.ListOrders = order.ListOrders
	}

	if len(grids) > 0 {
		reference := mergedReference(grids)
		result.SectorOrder = types.ReconcileOrder(order.SectorOrder, reference.Sectors)
		result.DomainOrder = types.ReconcileOrder(order.DomainOrder, reference.Domains)
		result.CountryOrder = types.ReconcileOrder(order.CountryOrder, reference.Countries)
	} else {
		result.SectorOrder = order.SectorOrder
		result.DomainOrder = order.DomainOrder
		result.CountryOrder = order.CountryOrder
	}

	return result
}

// currentHierarchy collects the distinct values per hierarchy level,
// keyed by the parent path. The root level lives under the empty key.
func currentHierarchy(g *Index) []map[string][]string {
	fields := g.Kind().HierarchyFields()
	levels := make([]map[string][]string, len(fields))
	seen := make([]map[string]map[string]struct{}, len(fields))
	for i := range fields {
		levels[i] = map[string][]string{}
		seen[i] = map[string]map[string]struct{}{}
	}
	for _, row := range g.Rows() {
		parents := make([]string, 0, len(fields))
		for i, field := range fields {
			value := types.FieldString(row.GetField(field))
			if value == "" {
				break
			}
			key := types.PathKey(parents...)
			if seen[i][key] == nil {
				seen[i][key] = map[string]struct{}{}
			}
			if _, ok := seen[i][key][value]; !ok {
				seen[i][key][value] = struct{}{}
				levels[i][key] = append(levels[i][key], value)
			}
			parents = append(parents, value)
		}
	}
	return levels
}

func reconcileLevel(saved map[string][]string, current map[string][]string) map[string][]string {
	if len(current) == 0 {
		return nil
	}
	result := make(map[string][]string, len(current))
	for key, values := range current {
		result[key] = types.ReconcileOrder(saved[key], values)
	}
	return result
}

func mergedReference(grids map[types.GridKind]*Index) *types.ReferenceValues {
	sectors := map[string]struct{}{}
	domains := map[string]struct{}{}
	countries := map[string]struct{}{}
	for _, g := range grids {
		reference := g.Reference()
		for _, v := range reference.Sectors {
			sectors[v] = struct{}{}
		}
		for _, v := range reference.Domains {
			domains[v] = struct{}{}
		}
		for _, v := range reference.Countries {
			countries[v] = struct{}{}
		}
	}
	toSorted := func(values map[string]struct{}) []string {
		result := make([]string, 0, len(values))
		for v := range values {
			result = append(result, v)
		}
		sort.Strings(result)
		return result
	}
	return &types.ReferenceValues{
		Sectors:   toSorted(sectors),
		Domains:   toSorted(domains),
		Countries: toSorted(countries),
	}
}
