package grid

import (
	"sort"
	"sync"

	"github.com/sandvall/katalog-grid/pkg/driver"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// Index holds the rows of one grid kind. Rows keep their arrival order,
// which is the deterministic base ordering every recomputation starts
// from. The index also maintains the reference value lists for the
// driver dimensions and the current affected set.
type Index struct {
	mu        sync.RWMutex
	kind      types.GridKind
	columns   []types.ColumnDescriptor
	rows      map[types.RowId]*types.DataRow
	order     []types.RowId
	reference *types.ReferenceValues
	affected  *types.AffectedSet
	dirty     bool
}

func NewIndex(kind types.GridKind, columns []types.ColumnDescriptor) *Index {
	return &Index{
		kind:    kind,
		columns: columns,
		rows:    make(map[types.RowId]*types.DataRow),
		order:   make([]types.RowId, 0),
	}
}

func (i *Index) Kind() types.GridKind {
	return i.kind
}

func (i *Index) Columns() []types.ColumnDescriptor {
	return i.columns
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.order)
}

// UpsertRows inserts or replaces rows. New rows append to the base
// order, replaced rows keep their position.
func (i *Index) UpsertRows(rows ...*types.DataRow) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, row := range rows {
		if row == nil {
			continue
		}
		if _, ok := i.rows[row.Id]; !ok {
			i.order = append(i.order, row.Id)
		}
		i.rows[row.Id] = row
	}
	i.dirty = true
}

func (i *Index) DeleteRow(id types.RowId) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.rows[id]; !ok {
		return
	}
	delete(i.rows, id)
	for n, v := range i.order {
		if v == id {
			i.order = append(i.order[:n], i.order[n+1:]...)
			break
		}
	}
	i.dirty = true
}

// Rows returns a snapshot of all rows in base order. The slice is new on
// every call, the rows themselves are shared and treated as immutable.
func (i *Index) Rows() []types.Row {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]types.Row, 0, len(i.order))
	for _, id := range i.order {
		if row, ok := i.rows[id]; ok {
			result = append(result, row)
		}
	}
	return result
}

// Reference returns the current driver reference value lists, rebuilding
// them when rows changed since the last call.
func (i *Index) Reference() *types.ReferenceValues {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.reference == nil || i.dirty {
		i.reference = i.buildReference()
		i.dirty = false
	}
	return i.reference
}

func (i *Index) buildReference() *types.ReferenceValues {
	collect := func(key string) []string {
		distinct := make(map[string]struct{})
		for _, row := range i.rows {
			for _, v := range driver.FieldValues(row.GetField(key)) {
				if v != driver.All && v != driver.Deleted {
					distinct[v] = struct{}{}
				}
			}
		}
		values := make([]string, 0, len(distinct))
		for v := range distinct {
			values = append(values, v)
		}
		sort.Strings(values)
		return values
	}
	return &types.ReferenceValues{
		Sectors:   collect(types.ColumnSector),
		Domains:   collect(types.ColumnDomain),
		Countries: collect(types.ColumnCountry),
	}
}

// MarkDriverValueDeleted computes the affected set for a cascading
// driver value deletion: every row referencing the value surfaces at
// the top of the grid, and the deleted dimension renders masked.
func (i *Index) MarkDriverValueDeleted(kind types.DeletedDriverKind, value string) *types.AffectedSet {
	column := ""
	switch kind {
	case types.DeletedSectors:
		column = types.ColumnSector
	case types.DeletedDomains:
		column = types.ColumnDomain
	case types.DeletedCountries:
		column = types.ColumnCountry
	default:
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	affected := types.NewAffectedSet()
	affected.DeletedDriver = kind
	for _, row := range i.rows {
		for _, v := range driver.FieldValues(row.GetField(column)) {
			if v == value || v == driver.All {
				affected.Add(row.Id)
				break
			}
		}
	}
	i.affected = affected
	return affected
}

// Affected returns the current affected set, nil when nothing pends.
func (i *Index) Affected() *types.AffectedSet {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.affected
}

// ClearAffected drops the affected set once the operator acknowledged
// the cascade.
func (i *Index) ClearAffected() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.affected = nil
}
