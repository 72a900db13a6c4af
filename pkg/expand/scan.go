package expand

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Placeholder delimiters.
const (
	OpenDelim  = "{{"
	CloseDelim = "}}"
)

// Position locates a placeholder in the template.
type Position struct {
	Offset int // byte offset of the opening {{
	Line   int // 1-based
	Column int // 1-based, in runes
}

// Placeholder is a single {{name}} occurrence.
type Placeholder struct {
	Name string
	Pos  Position
}

// Token returns the literal placeholder text for a variable name.
func Token(name string) string {
	return OpenDelim + name + CloseDelim
}

// scanner walks a template looking for {{...}} tokens.
// A token's content is any non-empty run of characters other than '}'.
type scanner struct {
	input string
	pos   int
	line  int
	col   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1, col: 1}
}

// next returns the next placeholder, or false at end of input.
func (s *scanner) next() (Placeholder, bool) {
	for s.pos < len(s.input) {
		if !strings.HasPrefix(s.input[s.pos:], OpenDelim) {
			s.advance()
			continue
		}

		start := Position{Offset: s.pos, Line: s.line, Column: s.col}
		contentStart := s.pos + len(OpenDelim)
		end := contentStart
		for end < len(s.input) && s.input[end] != '}' {
			end++
		}

		if end > contentStart && strings.HasPrefix(s.input[end:], CloseDelim) {
			name := s.input[contentStart:end]
			s.skipTo(end + len(CloseDelim))
			return Placeholder{Name: name, Pos: start}, true
		}

		// Not a placeholder here; retry from the next rune.
		s.advance()
	}
	return Placeholder{}, false
}

// advance moves past the current rune, updating line and column.
func (s *scanner) advance() {
	if s.pos >= len(s.input) {
		return
	}
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) skipTo(pos int) {
	for s.pos < pos {
		s.advance()
	}
}

// Scan returns every placeholder occurrence in template order.
// Matches never overlap.
func Scan(template string) []Placeholder {
	var out []Placeholder
	s := newScanner(template)
	for {
		p, ok := s.next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

// Extract returns the unique placeholder names in order of first occurrence.
// A template without placeholders yields an empty, non-nil slice.
func Extract(template string) []string {
	names := []string{}
	seen := make(map[string]struct{})
	for _, p := range Scan(template) {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		names = append(names, p.Name)
	}
	return names
}

// IsIdentifier reports whether name looks like a conventional identifier:
// a letter or underscore followed by letters, digits, underscores, dots or dashes.
// Extraction accepts any name; this is only used to warn about unusual ones.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '.' || r == '-'):
		default:
			return false
		}
	}
	return true
}
