package driver

import "strings"

// All is the sentinel meaning "applies to every value of this dimension".
// Distinct from an enumeration that happens to cover every value, the two
// are reconciled by IsAllEquivalent.
const All = "ALL"

// Deleted marks a driver segment whose referenced value was removed. It
// is a display concern only and never takes part in ordering.
const Deleted = "-"

type ValueClass int

const (
	ClassSingle ValueClass = iota
	ClassMultiple
	ClassAll
)

// Fields is the structured form of the canonical comma-delimited driver
// string "Sector, Domain, Country, Clarifier".
type Fields struct {
	Sector    string `json:"sector"`
	Domain    string `json:"domain"`
	Country   string `json:"country"`
	Clarifier string `json:"clarifier,omitempty"`
}

// Parse splits a driver string into its fields. Absent segments default
// to the empty string, malformed input never fails.
func Parse(driverString string) Fields {
	parts := strings.Split(driverString, ",")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	f := Fields{
		Sector:  get(0),
		Domain:  get(1),
		Country: get(2),
	}
	if len(parts) > 3 {
		f.Clarifier = strings.TrimSpace(strings.Join(parts[3:], ","))
	}
	return f
}

func (f Fields) Format() string {
	return f.Sector + ", " + f.Domain + ", " + f.Country + ", " + f.Clarifier
}

// Split breaks a comma-joined value into its non-empty trimmed parts.
func Split(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Classify decides how a driver field value behaves: blank and one-part
// values are Single, the literal sentinel is All, more than one part is
// Multiple.
func Classify(value string) ValueClass {
	if strings.TrimSpace(value) == "" {
		return ClassSingle
	}
	if value == All {
		return ClassAll
	}
	if len(Split(value)) > 1 {
		return ClassMultiple
	}
	return ClassSingle
}

// FieldValues converts any of the legacy representations of a driver
// field to the canonical value list: a scalar string, a comma-joined
// string, a native list, or a list with the sentinel expanded into it.
// The sentinel collapses to a single-element list.
func FieldValues(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		if typed == All {
			return []string{All}
		}
		return Split(typed)
	case []string:
		return trimList(typed)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, v := range typed {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		return trimList(parts)
	}
	return nil
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if v == All {
			return []string{All}
		}
		out = append(out, v)
	}
	return out
}

// ClassifyValues classifies the canonical list form, using the reference
// list to detect enumerations equivalent to the sentinel.
func ClassifyValues(values []string, reference []string) ValueClass {
	switch len(values) {
	case 0:
		return ClassSingle
	case 1:
		if values[0] == All {
			return ClassAll
		}
		return ClassSingle
	}
	if IsAllEquivalent(values, reference) {
		return ClassAll
	}
	return ClassMultiple
}
