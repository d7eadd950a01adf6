package storage

import (
	"github.com/sandvall/katalog-grid/pkg/driver"
	"github.com/sandvall/katalog-grid/pkg/types"
)

// Older snapshots carry driver fields in drifting representations: a
// comma-joined string, a native list, or a list with the ALL sentinel
// expanded into it as a member. The canonical form is a native list
// with the sentinel collapsed; everything converts on load and the next
// save writes only the canonical form.

// legacySortOrder is the first persisted order format: driver orders
// saved as comma-joined strings instead of arrays, no enabled flag
// (presence of the file meant enabled).
type legacySortOrder struct {
	PartOrder     string              `json:"partOrder"`
	SectionOrders map[string]string   `json:"sectionOrders"`
	GroupOrders   map[string]string   `json:"groupOrders"`
	SectorOrder   string              `json:"sectorOrder"`
	DomainOrder   string              `json:"domainOrder"`
	CountryOrder  string              `json:"countryOrder"`
}

func (l *legacySortOrder) upgrade() *types.PredefinedSortOrder {
	splitMap := func(m map[string]string) map[string][]string {
		if len(m) == 0 {
			return nil
		}
		out := make(map[string][]string, len(m))
		for k, v := range m {
			out[k] = splitLegacy(v)
		}
		return out
	}
	return &types.PredefinedSortOrder{
		Enabled:       true,
		PartOrder:     splitLegacy(l.PartOrder),
		SectionOrders: splitMap(l.SectionOrders),
		GroupOrders:   splitMap(l.GroupOrders),
		SectorOrder:   splitLegacy(l.SectorOrder),
		DomainOrder:   splitLegacy(l.DomainOrder),
		CountryOrder:  splitLegacy(l.CountryOrder),
	}
}

// splitLegacy splits a comma-joined order list, keeping the sentinel as
// an ordinary member since its position anchors the sort.
func splitLegacy(value string) []string {
	return driver.Split(value)
}

// NormalizeRow rewrites a row's driver fields to the canonical native
// list representation.
func NormalizeRow(row *types.DataRow) {
	if row == nil || row.Fields == nil {
		return
	}
	for _, key := range []string{types.ColumnSector, types.ColumnDomain, types.ColumnCountry} {
		value, ok := row.Fields[key]
		if !ok || value == nil {
			continue
		}
		row.Fields[key] = driver.FieldValues(value)
	}
}

// upgradeGridConfig converts column filter values saved as comma-joined
// strings in single-element lists back into individual atoms.
func upgradeGridConfig(config *types.GridConfig) {
	if config == nil || len(config.ColumnFilters) == 0 {
		return
	}
	for key, values := range config.ColumnFilters {
		if !types.IsDriverColumn(key) || len(values) != 1 {
			continue
		}
		if atoms := driver.Split(values[0]); len(atoms) > 1 {
			config.ColumnFilters[key] = atoms
		}
	}
}
