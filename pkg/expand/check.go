package expand

import "github.com/leapstack-labs/tplgen/pkg/core"

// ValueCount pairs a variable name with its number of parsed values.
type ValueCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counts returns the value-list length of every parsed variable, in order.
func Counts(parsed []core.ParsedVariable) []ValueCount {
	counts := make([]ValueCount, len(parsed))
	for i, p := range parsed {
		counts[i] = ValueCount{Name: p.Name, Count: p.Len()}
	}
	return counts
}

// Consistent reports whether all parsed variables have the same number of values.
// An empty list is consistent.
func Consistent(parsed []core.ParsedVariable) bool {
	for i := 1; i < len(parsed); i++ {
		if parsed[i].Len() != parsed[0].Len() {
			return false
		}
	}
	return true
}

// MaxCount returns the longest value-list length, or 0 for no variables.
func MaxCount(parsed []core.ParsedVariable) int {
	maxCount := 0
	for _, p := range parsed {
		if p.Len() > maxCount {
			maxCount = p.Len()
		}
	}
	return maxCount
}
