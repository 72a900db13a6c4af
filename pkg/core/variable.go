package core

import "strings"

// Variable is a named entry holding the raw, delimiter-joined values for one
// placeholder name. Name is derived from the template and never edited directly.
type Variable struct {
	Name      string `json:"name" yaml:"name"`
	RawValues string `json:"raw_values" yaml:"raw_values"`
}

// Blank reports whether no values were provided (empty or whitespace-only).
func (v Variable) Blank() bool {
	return strings.TrimSpace(v.RawValues) == ""
}

// ParsedVariable is a Variable after splitting its raw values on the delimiter.
type ParsedVariable struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Len returns the number of parsed values.
func (p ParsedVariable) Len() int {
	return len(p.Values)
}

// ValueAt returns the value for row i, applying the fallback policy when the
// list is shorter than i+1.
func (p ParsedVariable) ValueAt(i int, fallback FallbackPolicy) string {
	if i >= 0 && i < len(p.Values) {
		return p.Values[i]
	}
	switch fallback {
	case FallbackSpace:
		return " "
	default:
		if len(p.Values) == 0 {
			return ""
		}
		return p.Values[len(p.Values)-1]
	}
}

// FallbackPolicy selects the substitution value used when a variable has
// fewer values than the row being generated.
type FallbackPolicy string

// Fallback policy constants.
const (
	// FallbackLast repeats the last value of the shorter list.
	FallbackLast FallbackPolicy = "last"
	// FallbackSpace substitutes a single space.
	FallbackSpace FallbackPolicy = "space"
)

// ParseFallbackPolicy converts a string to a FallbackPolicy.
// Returns FallbackLast and false if the string is not a known policy.
func ParseFallbackPolicy(s string) (FallbackPolicy, bool) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case FallbackLast, "":
		return FallbackLast, true
	case FallbackSpace:
		return FallbackSpace, true
	default:
		return FallbackLast, false
	}
}

// VariableNames returns the names of vars in order.
func VariableNames(vars []Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}
