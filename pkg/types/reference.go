package types

// ReferenceValues is the ordered list of all possible values per driver
// dimension, used to decide ALL-equivalence and to seed filter options.
// The grid index keeps these current as rows come and go.
type ReferenceValues struct {
	Sectors   []string `json:"sectors"`
	Domains   []string `json:"domains"`
	Countries []string `json:"countries"`
}

func (r *ReferenceValues) ForColumn(key string) []string {
	if r == nil {
		return nil
	}
	switch key {
	case ColumnSector:
		return r.Sectors
	case ColumnDomain:
		return r.Domains
	case ColumnCountry:
		return r.Countries
	}
	return nil
}
