package sorting

import (
	"cmp"
	"strings"

	"github.com/sandvall/katalog-grid/pkg/types"
)

// CompareByRules applies the custom rules as a lexicographic tuple, the
// first rule that distinguishes the rows decides. Rules referencing a
// column neither row carries compare as equal and fall through.
func CompareByRules(a, b types.Row, rules []types.CustomSortRule) int {
	for _, rule := range rules {
		field := rule.SortOn
		if field == "" {
			field = rule.Column
		}
		if field == "" {
			continue
		}
		c := CompareValues(a.GetField(field), b.GetField(field))
		if rule.Descending() {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// CompareValues compares two row field values, numerically when either
// side parses as a number (the other side coerces to 0), otherwise as
// case-folded strings. Missing values read as the empty string.
func CompareValues(a, b any) int {
	aNum, aOk := types.FieldNumber(a)
	bNum, bOk := types.FieldNumber(b)
	if aOk || bOk {
		return cmp.Compare(aNum, bNum)
	}
	return CompareStrings(types.FieldString(a), types.FieldString(b))
}

func CompareStrings(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	// case-insensitive ties settle on the raw strings for determinism
	return strings.Compare(a, b)
}
