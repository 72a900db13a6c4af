package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/tplgen/pkg/core"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		delimiter string
		want      []string
	}{
		{"comma", "a,b,c", ",", []string{"a", "b", "c"}},
		{"empty raw", "", ",", []string{""}},
		{"trims pieces", "  a , b ,c  ", ",", []string{"a", "b", "c"}},
		{"keeps empty pieces", "a,,b", ",", []string{"a", "", "b"}},
		{"no delimiter present", "single", ",", []string{"single"}},
		{"multi-char delimiter", "a || b||c", "||", []string{"a", "b", "c"}},
		{"regex chars are literal", "a.b.c", ".", []string{"a", "b", "c"}},
		{"escaped newline", "a\nb\r\nc", `\n`, []string{"a", "b", "c"}},
		{"named newline", "a\nb", "newline", []string{"a", "b"}},
		{"real newline", "a\n b", "\n", []string{"a", "b"}},
		{"empty delimiter", "  a,b  ", "", []string{"a,b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValues(tt.raw, tt.delimiter))
		})
	}
}

func TestNormalizeDelimiter(t *testing.T) {
	assert.Equal(t, "\n", NormalizeDelimiter(`\n`))
	assert.Equal(t, "\n", NormalizeDelimiter("newline"))
	assert.Equal(t, ";", NormalizeDelimiter(";"))
}

func TestParseVariables(t *testing.T) {
	got := ParseVariables([]core.Variable{
		{Name: "a", RawValues: "1;2"},
		{Name: "b", RawValues: "x"},
	}, ";")

	assert.Equal(t, []core.ParsedVariable{
		{Name: "a", Values: []string{"1", "2"}},
		{Name: "b", Values: []string{"x"}},
	}, got)
}

func TestConsistent(t *testing.T) {
	mk := func(counts ...int) []core.ParsedVariable {
		out := make([]core.ParsedVariable, len(counts))
		for i, c := range counts {
			out[i] = core.ParsedVariable{Name: string(rune('a' + i)), Values: make([]string, c)}
		}
		return out
	}

	assert.True(t, Consistent(mk(2, 2, 2)))
	assert.False(t, Consistent(mk(2, 3)))
	assert.True(t, Consistent(mk(4)))
	assert.True(t, Consistent(nil))

	assert.Equal(t, 3, MaxCount(mk(2, 3, 1)))
	assert.Equal(t, 0, MaxCount(nil))
	assert.Equal(t, []ValueCount{{Name: "a", Count: 2}, {Name: "b", Count: 3}}, Counts(mk(2, 3)))
}
