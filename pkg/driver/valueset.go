package driver

import "math"

// Sort key constants. Saved predefined orders depend on these exact
// values, do not change them.
const (
	keyAllMissing      = math.MinInt32 // ALL with no anchor in the order sorts first
	keyBeforeAll       = -10000
	keyAfterAll        = 10000
	keyMultipleBase    = 100000
	keyMultipleUnknown = 1000000
	keySingleUnknown   = 2000000
)

// IsAllEquivalent reports whether a value set enumerates every possible
// value, i.e. it is semantically the sentinel. The sentinel itself is
// excluded from the reference set before comparing.
func IsAllEquivalent(values []string, reference []string) bool {
	ref := make(map[string]struct{}, len(reference))
	for _, v := range reference {
		if v == All {
			continue
		}
		ref[v] = struct{}{}
	}
	if len(values) == 0 || len(values) != len(ref) {
		return false
	}
	for _, v := range values {
		if _, ok := ref[v]; !ok {
			return false
		}
	}
	return true
}

func indexOf(order []string, value string) int {
	for i, v := range order {
		if v == value {
			return i
		}
	}
	return -1
}

// SortKey positions a driver field value inside an authored order list.
// The author may place the sentinel anywhere in the list; single values
// stay on their side of it, multi-valued entries sort as a block after
// the sentinel positioned by their first member, and anything the list
// does not know about sinks to the very end.
func SortKey(value string, order []string, reference []string) int {
	return SortKeyValues(FieldValues(value), order, reference)
}

// SortKeyValues is SortKey over the canonical list form.
func SortKeyValues(values []string, order []string, reference []string) int {
	allIndex := indexOf(order, All)
	switch ClassifyValues(values, reference) {
	case ClassAll:
		if allIndex >= 0 {
			return allIndex
		}
		return keyAllMissing
	case ClassMultiple:
		idx := indexOf(order, values[0])
		if idx < 0 {
			return keyMultipleUnknown
		}
		return keyMultipleBase + idx
	}
	if len(values) == 0 {
		return keySingleUnknown
	}
	idx := indexOf(order, values[0])
	if idx < 0 {
		return keySingleUnknown
	}
	if allIndex >= 0 {
		if idx < allIndex {
			return idx + keyBeforeAll
		}
		if idx > allIndex {
			return idx + keyAfterAll
		}
	}
	return idx
}
