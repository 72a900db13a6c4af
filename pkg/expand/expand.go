package expand

import (
	"strings"

	"github.com/leapstack-labs/tplgen/pkg/core"
)

// Expand produces one output row per value index.
//
// Row i replaces every {{name}} with the i-th value of that variable, or with
// the fallback when the variable has fewer values. All placeholders of a row
// are replaced in a single pass, so substituted values are never re-scanned.
func Expand(template string, parsed []core.ParsedVariable, fallback core.FallbackPolicy) []string {
	maxCount := MaxCount(parsed)
	rows := make([]string, 0, maxCount)

	pairs := make([]string, 2*len(parsed))
	for i := 0; i < maxCount; i++ {
		for j, p := range parsed {
			pairs[2*j] = Token(p.Name)
			pairs[2*j+1] = p.ValueAt(i, fallback)
		}
		rows = append(rows, strings.NewReplacer(pairs...).Replace(template))
	}

	return rows
}
