package types

// GridConfig is the per-grid-instance persisted configuration. Column
// filters and single-column sort are ephemeral UI state mirrored here,
// custom rules are saved explicitly by the user. "Reset filters" clears
// everything except the custom rules and the shared predefined order.
type GridConfig struct {
	ColumnFilters ColumnFilters    `json:"columnFilters,omitempty"`
	TextFilters   TextFilters      `json:"textFilters,omitempty"`
	Widths        map[string]int   `json:"widths,omitempty"`
	Column        *SortConfig      `json:"sortConfig,omitempty"`
	Rules         []CustomSortRule `json:"customSortRules,omitempty"`
}

func (c *GridConfig) ResetFilters() {
	c.ColumnFilters = nil
	c.TextFilters = nil
	c.Column = nil
}
