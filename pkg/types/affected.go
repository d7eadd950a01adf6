package types

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/sandvall/katalog-grid/pkg/common/jsoncompat"
)

type DeletedDriverKind string

const (
	DeletedNone      = DeletedDriverKind("")
	DeletedSectors   = DeletedDriverKind("sectors")
	DeletedDomains   = DeletedDriverKind("domains")
	DeletedCountries = DeletedDriverKind("countries")
)

// AffectedSet marks rows implicated by an out-of-band event, e.g. a
// cascading driver value deletion. Affected rows surface first in the
// grid. The deleted driver kind only masks display of that field, it
// never takes part in ordering.
type AffectedSet struct {
	ids           *roaring.Bitmap
	DeletedDriver DeletedDriverKind
}

func NewAffectedSet(ids ...RowId) *AffectedSet {
	bm := roaring.NewBitmap()
	for _, id := range ids {
		bm.Add(uint32(id))
	}
	return &AffectedSet{ids: bm}
}

func (a *AffectedSet) Add(id RowId) {
	if a.ids == nil {
		a.ids = roaring.NewBitmap()
	}
	a.ids.Add(uint32(id))
}

func (a *AffectedSet) Contains(id RowId) bool {
	if a == nil || a.ids == nil {
		return false
	}
	return a.ids.Contains(uint32(id))
}

func (a *AffectedSet) IsEmpty() bool {
	return a == nil || a.ids == nil || a.ids.IsEmpty()
}

func (a *AffectedSet) Len() int {
	if a == nil || a.ids == nil {
		return 0
	}
	return int(a.ids.GetCardinality())
}

func (a *AffectedSet) Ids() []RowId {
	if a == nil || a.ids == nil {
		return nil
	}
	out := make([]RowId, 0, a.ids.GetCardinality())
	it := a.ids.Iterator()
	for it.HasNext() {
		out = append(out, RowId(it.Next()))
	}
	return out
}

type affectedJson struct {
	Ids           []RowId           `json:"ids"`
	DeletedDriver DeletedDriverKind `json:"deletedDriverType,omitempty"`
}

func (a *AffectedSet) MarshalJSON() ([]byte, error) {
	return jsoncompat.Marshal(affectedJson{Ids: a.Ids(), DeletedDriver: a.DeletedDriver})
}

func (a *AffectedSet) UnmarshalJSON(data []byte) error {
	var raw affectedJson
	if err := jsoncompat.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.ids = roaring.NewBitmap()
	for _, id := range raw.Ids {
		a.ids.Add(uint32(id))
	}
	a.DeletedDriver = raw.DeletedDriver
	return nil
}
