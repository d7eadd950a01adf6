package types

import (
	"encoding/json"
	"testing"
)

func TestAffectedSetBasics(t *testing.T) {
	a := NewAffectedSet(3, 1)
	if !a.Contains(1) || !a.Contains(3) || a.Contains(2) {
		t.Errorf("Expected membership for 1 and 3 only")
	}
	if a.Len() != 2 {
		t.Errorf("Expected 2, got %d", a.Len())
	}
	a.Add(2)
	if !a.Contains(2) {
		t.Errorf("Expected 2 after Add")
	}
	var nilSet *AffectedSet
	if !nilSet.IsEmpty() || nilSet.Contains(1) || nilSet.Len() != 0 {
		t.Errorf("Expected nil set to behave empty")
	}
}

func TestAffectedSetJsonRoundTrip(t *testing.T) {
	a := NewAffectedSet(5, 2, 9)
	a.DeletedDriver = DeletedDomains
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Expected marshal to succeed, got %v", err)
	}
	b := &AffectedSet{}
	if err := json.Unmarshal(data, b); err != nil {
		t.Fatalf("Expected unmarshal to succeed, got %v", err)
	}
	if b.Len() != 3 || !b.Contains(9) || b.DeletedDriver != DeletedDomains {
		t.Errorf("Expected round trip, got %v %v", b.Ids(), b.DeletedDriver)
	}
}
