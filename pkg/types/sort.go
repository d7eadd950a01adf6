package types

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// CustomSortRule is one rule of an ad hoc multi-column sort. Rules apply
// as a lexicographic tuple, the first rule that distinguishes two rows
// decides their order.
type CustomSortRule struct {
	Id     string `json:"id"`
	Column string `json:"column"`
	SortOn string `json:"sortOn"`
	Order  string `json:"order"`
}

func (r CustomSortRule) Descending() bool {
	return r.Order == SortDesc
}

// SortConfig is the single-column sort. Only the "custom" kind carries
// meaning: an explicit value list defining an index-based ordering. The
// direction field is persisted for forward compatibility but the resolver
// ignores it for custom kind.
type SortConfig struct {
	Column      string   `json:"column"`
	Kind        string   `json:"kind"`
	Order       string   `json:"order,omitempty"`
	CustomOrder []string `json:"customOrder,omitempty"`
}

const SortKindCustom = "custom"

func (c *SortConfig) IsCustom() bool {
	return c != nil && c.Kind == SortKindCustom && len(c.CustomOrder) > 0
}

type SortModeKind int

const (
	SortModeNone SortModeKind = iota
	SortModeCustomRules
	SortModePredefined
	SortModeColumn
)

// SortMode is the resolved sort state. Exactly one variant is active,
// picked by precedence: custom rules, then predefined order, then single
// column, then none.
type SortMode struct {
	Kind       SortModeKind
	Rules      []CustomSortRule
	Predefined *PredefinedSortOrder
	Column     *SortConfig
}

// SortState is the raw, possibly overlapping sort configuration as the
// caller persisted it. The resolver collapses it into a SortMode.
type SortState struct {
	Rules      []CustomSortRule     `json:"rules,omitempty"`
	Predefined *PredefinedSortOrder `json:"predefined,omitempty"`
	Column     *SortConfig          `json:"column,omitempty"`
}
