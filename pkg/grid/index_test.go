package grid

import (
	"testing"

	"github.com/sandvall/katalog-grid/pkg/types"
)

func TestUpsertKeepsBaseOrder(t *testing.T) {
	idx := testIndex()
	idx.UpsertRows(&types.DataRow{Id: 2, Fields: map[string]any{"variable": "v2b"}})
	rows := idx.Rows()
	if len(rows) != 3 || rows[1].GetId() != 2 {
		t.Errorf("Expected replaced row to keep position, got %v", rows)
	}
	if types.FieldString(rows[1].GetField("variable")) != "v2b" {
		t.Errorf("Expected updated fields")
	}
}

func TestDeleteRow(t *testing.T) {
	idx := testIndex()
	idx.DeleteRow(2)
	rows := idx.Rows()
	if len(rows) != 2 || rows[0].GetId() != 1 || rows[1].GetId() != 3 {
		t.Errorf("Expected [1 3], got %v", rows)
	}
	idx.DeleteRow(99) // unknown id is a no-op
	if idx.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", idx.Len())
	}
}

func TestReferenceCollectsAtoms(t *testing.T) {
	idx := testIndex()
	ref := idx.Reference()
	expected := []string{"Finance", "Health", "Tech"}
	if len(ref.Sectors) != 3 {
		t.Fatalf("Expected %v, got %v", expected, ref.Sectors)
	}
	for i, v := range expected {
		if ref.Sectors[i] != v {
			t.Errorf("Expected %v, got %v", expected, ref.Sectors)
		}
	}
}

func TestReferenceRebuildsAfterChange(t *testing.T) {
	idx := testIndex()
	idx.Reference()
	idx.UpsertRows(&types.DataRow{Id: 4, Fields: map[string]any{"sector": "Media"}})
	ref := idx.Reference()
	if len(ref.Sectors) != 4 {
		t.Errorf("Expected Media added, got %v", ref.Sectors)
	}
}

func TestMarkDriverValueDeleted(t *testing.T) {
	idx := testIndex()
	affected := idx.MarkDriverValueDeleted(types.DeletedSectors, "Health")
	// row 3 references Health directly, row 2 is ALL and therefore covered
	if !affected.Contains(3) || !affected.Contains(2) || affected.Contains(1) {
		t.Errorf("Expected rows 2 and 3 affected, got %v", affected.Ids())
	}
	if affected.DeletedDriver != types.DeletedSectors {
		t.Errorf("Expected deleted driver kind carried")
	}
	if idx.Affected() == nil {
		t.Errorf("Expected affected set retained on index")
	}
	idx.ClearAffected()
	if idx.Affected() != nil {
		t.Errorf("Expected affected set cleared")
	}
}

func TestMarkUnknownDriverKind(t *testing.T) {
	idx := testIndex()
	if got := idx.MarkDriverValueDeleted(types.DeletedNone, "x"); got != nil {
		t.Errorf("Expected nil for unknown kind, got %v", got)
	}
}
