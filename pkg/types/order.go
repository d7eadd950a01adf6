package types

import "strings"

// PathSeparator joins parent values into the lookup key of a sub-level
// order, e.g. "PartA|SectionB".
const PathSeparator = "|"

func PathKey(parts ...string) string {
	return strings.Join(parts, PathSeparator)
}

// PredefinedSortOrder is the user-authored hierarchical order, persisted
// as one JSON document covering every grid kind plus the three flat
// driver orders that apply regardless of hierarchy.
type PredefinedSortOrder struct {
	Enabled bool `json:"enabled"`

	PartOrder      []string            `json:"partOrder,omitempty"`
	SectionOrders  map[string][]string `json:"sectionOrders,omitempty"`
	GroupOrders    map[string][]string `json:"groupOrders,omitempty"`
	VariableOrders map[string][]string `json:"variableOrders,omitempty"`

	BeingOrder   []string            `json:"beingOrder,omitempty"`
	AvatarOrders map[string][]string `json:"avatarOrders,omitempty"`
	ObjectOrders map[string][]string `json:"objectOrders,omitempty"`

	SetOrder       []string            `json:"setOrder,omitempty"`
	GroupingOrders map[string][]string `json:"groupingOrders,omitempty"`
	ListOrders     map[string][]string `json:"listOrders,omitempty"`

	SectorOrder  []string `json:"sectorOrder,omitempty"`
	DomainOrder  []string `json:"domainOrder,omitempty"`
	CountryOrder []string `json:"countryOrder,omitempty"`
}

// RootOrder returns the top-level order list for a grid kind, nil when
// none was saved.
func (p *PredefinedSortOrder) RootOrder(kind GridKind) []string {
	if p == nil {
		return nil
	}
	switch kind {
	case GridVariables:
		return p.PartOrder
	case GridObjects:
		return p.BeingOrder
	case GridLists:
		return p.SetOrder
	}
	return nil
}

// LevelOrders returns the per-parent order maps for a kind, one map per
// hierarchy level below the root, in level order.
func (p *PredefinedSortOrder) LevelOrders(kind GridKind) []map[string][]string {
	if p == nil {
		return nil
	}
	switch kind {
	case GridVariables:
		return []map[string][]string{p.SectionOrders, p.GroupOrders, p.VariableOrders}
	case GridObjects:
		return []map[string][]string{p.AvatarOrders, p.ObjectOrders}
	case GridLists:
		return []map[string][]string{p.GroupingOrders, p.ListOrders}
	}
	return nil
}

// DriverOrder returns the flat order for one of the driver columns.
func (p *PredefinedSortOrder) DriverOrder(column string) []string {
	if p == nil {
		return nil
	}
	switch column {
	case ColumnSector:
		return p.SectorOrder
	case ColumnDomain:
		return p.DomainOrder
	case ColumnCountry:
		return p.CountryOrder
	}
	return nil
}

// ActiveFor reports whether predefined ordering applies to a grid kind:
// the flag is on and either a root order exists for the kind or the kind
// is flat and at least one driver order is saved.
func (p *PredefinedSortOrder) ActiveFor(kind GridKind) bool {
	if p == nil || !p.Enabled {
		return false
	}
	if len(p.RootOrder(kind)) > 0 {
		return true
	}
	if kind == GridMetadata {
		return len(p.SectorOrder) > 0 || len(p.DomainOrder) > 0 || len(p.CountryOrder) > 0
	}
	return false
}

// ReconcileOrder merges a saved order with the currently known values.
// Saved entries keep their relative order, values no longer present drop
// out and newly discovered values append at the end in the order given.
func ReconcileOrder(saved []string, current []string) []string {
	known := make(map[string]struct{}, len(current))
	for _, v := range current {
		known[v] = struct{}{}
	}
	result := make([]string, 0, len(current))
	seen := make(map[string]struct{}, len(saved))
	for _, v := range saved {
		if _, ok := known[v]; ok || v == "ALL" {
			result = append(result, v)
			seen[v] = struct{}{}
		}
	}
	for _, v := range current {
		if _, ok := seen[v]; !ok {
			result = append(result, v)
			seen[v] = struct{}{}
		}
	}
	return result
}
