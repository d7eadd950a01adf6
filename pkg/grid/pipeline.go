package grid

import (
	"github.com/sandvall/katalog-grid/pkg/filter"
	"github.com/sandvall/katalog-grid/pkg/sorting"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// Snapshot is the full, self-contained input of one recomputation. The
// pipeline never mutates any of it.
type Snapshot struct {
	Kind          types.GridKind
	Rows          []types.Row
	Columns       []types.ColumnDescriptor
	Reference     *types.ReferenceValues
	TextFilters   types.TextFilters
	ColumnFilters types.ColumnFilters
	Affected      *types.AffectedSet
	Sort          *types.SortState
}

// Result is the ordered output for display plus the narrowed filter
// options the dropdowns feed from.
type Result struct {
	Rows      []types.Row         `json:"rows"`
	Options   map[string][]string `json:"options,omitempty"`
	TotalRows int                 `json:"totalRows"`
}

// Recompute runs the one-way pipeline: text filters, column filters,
// affected-first prioritization, sort resolution. It is a pure function
// of the snapshot and cheap enough to re-run on every input change.
func Recompute(s Snapshot) Result {
	rows := filter.ApplyTextFilters(s.Rows, s.TextFilters)
	options := filter.AvailableOptions(rows, s.ColumnFilters, s.Columns, s.Reference)
	rows = filter.ApplyColumnFilters(rows, s.ColumnFilters, s.Reference)
	rows = sorting.Prioritize(rows, s.Affected)

	resolver := &sorting.Resolver{Kind: s.Kind, Reference: s.Reference, Affected: s.Affected}
	rows = resolver.Sort(rows, sorting.ResolveMode(s.Sort, s.Kind))

	return Result{
		Rows:      rows,
		Options:   options,
		TotalRows: len(s.Rows),
	}
}
