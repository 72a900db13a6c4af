package expand

import (
	"strings"

	"github.com/leapstack-labs/tplgen/pkg/core"
)

// Delimiter names understood in addition to literal separators.
const (
	// EscapedNewline is the two-character sequence that stands for a line break.
	EscapedNewline = `\n`
	// NamedNewline is the word form of a line-break delimiter.
	NamedNewline = "newline"
	// DefaultDelimiter separates values when none is configured.
	DefaultDelimiter = ","
)

// NormalizeDelimiter resolves the newline aliases to a real line break.
// Any other delimiter is returned unchanged.
func NormalizeDelimiter(delimiter string) string {
	switch delimiter {
	case EscapedNewline, NamedNewline:
		return "\n"
	default:
		return delimiter
	}
}

// ParseValues splits raw on the literal delimiter and trims every piece.
//
// An empty raw string yields a single empty value, never an empty list, so
// "no values" must be detected with core.Variable.Blank rather than by length.
// An empty delimiter yields the whole trimmed string as one value.
func ParseValues(raw, delimiter string) []string {
	delimiter = NormalizeDelimiter(delimiter)
	if delimiter == "\n" {
		raw = strings.ReplaceAll(raw, "\r\n", "\n")
	}
	if delimiter == "" {
		return []string{strings.TrimSpace(raw)}
	}

	parts := strings.Split(raw, delimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ParseVariables parses every variable with the same delimiter.
func ParseVariables(vars []core.Variable, delimiter string) []core.ParsedVariable {
	parsed := make([]core.ParsedVariable, len(vars))
	for i, v := range vars {
		parsed[i] = core.ParsedVariable{
			Name:   v.Name,
			Values: ParseValues(v.RawValues, delimiter),
		}
	}
	return parsed
}
