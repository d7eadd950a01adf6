package sorting

import (
	"github.com/sandvall/katalog-grid/pkg/types"
)

// HierarchicalOrderIndex is the lookup form of a PredefinedSortOrder for
// one grid kind: a position map per level, keyed by the parent path. It
// is rebuilt whenever the saved order changes, never during a sort.
type HierarchicalOrderIndex struct {
	kind   types.GridKind
	fields []string
	// levels[0] holds the root order under the empty path key
	levels []map[string]map[string]int
}

// BuildHierarchyIndex flattens the saved order lists into position maps.
func BuildHierarchyIndex(kind types.GridKind, order *types.PredefinedSortOrder) *HierarchicalOrderIndex {
	fields := kind.HierarchyFields()
	idx := &HierarchicalOrderIndex{
		kind:   kind,
		fields: fields,
		levels: make([]map[string]map[string]int, len(fields)),
	}
	if len(fields) == 0 {
		return idx
	}
	idx.levels[0] = map[string]map[string]int{
		"": positionMap(order.RootOrder(kind)),
	}
	for level, orders := range order.LevelOrders(kind) {
		byParent := make(map[string]map[string]int, len(orders))
		for parentKey, values := range orders {
			byParent[parentKey] = positionMap(values)
		}
		idx.levels[level+1] = byParent
	}
	return idx
}

func positionMap(values []string) map[string]int {
	m := make(map[string]int, len(values))
	for i, v := range values {
		if _, ok := m[v]; !ok {
			m[v] = i
		}
	}
	return m
}

// Levels returns the number of hierarchy levels for the grid kind.
func (h *HierarchicalOrderIndex) Levels() int {
	return len(h.fields)
}

// Field returns the row field key for a level.
func (h *HierarchicalOrderIndex) Field(level int) string {
	return h.fields[level]
}

// Lookup returns the authored position of a value at a level under the
// given parent path. The second result is false when the value is not in
// the saved order, the third is false when no order was saved for that
// parent at all (alphabetical fallback applies).
func (h *HierarchicalOrderIndex) Lookup(level int, parentKey string, value string) (int, bool, bool) {
	if level >= len(h.levels) || h.levels[level] == nil {
		return 0, false, false
	}
	positions, ok := h.levels[level][parentKey]
	if !ok || len(positions) == 0 {
		return 0, false, false
	}
	pos, found := positions[value]
	return pos, found, true
}
