package types

type GridKind string

const (
	GridObjects   = GridKind("objects")
	GridVariables = GridKind("variables")
	GridLists     = GridKind("lists")
	GridMetadata  = GridKind("metadata")
)

const (
	ColumnSector  = "sector"
	ColumnDomain  = "domain"
	ColumnCountry = "country"
)

// HierarchyFields returns the row field keys that make up the predefined
// order hierarchy for a grid kind, root level first. Metadata grids are
// flat, predefined order only chains the driver orders for them.
func (k GridKind) HierarchyFields() []string {
	switch k {
	case GridVariables:
		return []string{"part", "section", "group", "variable"}
	case GridObjects:
		return []string{"being", "avatar", "object"}
	case GridLists:
		return []string{"set", "grouping", "list"}
	}
	return nil
}

func (k GridKind) Valid() bool {
	switch k {
	case GridObjects, GridVariables, GridLists, GridMetadata:
		return true
	}
	return false
}

// IsDriverColumn reports whether a column carries multi-valued driver
// dimension values with ALL semantics.
func IsDriverColumn(key string) bool {
	return key == ColumnSector || key == ColumnDomain || key == ColumnCountry
}
