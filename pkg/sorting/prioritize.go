package sorting

import "github.com/sandvall/katalog-grid/pkg/types"

// Prioritize stable-partitions rows so that affected rows come first.
// Relative order inside each partition is preserved. An empty affected
// set is the identity.
func Prioritize(rows []types.Row, affected *types.AffectedSet) []types.Row {
	if affected.IsEmpty() {
		return rows
	}
	result := make([]types.Row, 0, len(rows))
	rest := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		if affected.Contains(row.GetId()) {
			result = append(result, row)
		} else {
			rest = append(rest, row)
		}
	}
	return append(result, rest...)
}
