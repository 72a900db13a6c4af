package expand

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tplgen/pkg/core"
)

func vars(pairs ...string) []core.Variable {
	out := make([]core.Variable, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, core.Variable{Name: pairs[i], RawValues: pairs[i+1]})
	}
	return out
}

func TestGenerate_Scenarios(t *testing.T) {
	gen := NewGenerator(Options{Delimiter: ","})

	t.Run("hello", func(t *testing.T) {
		rows, err := gen.Generate("Hello {{name}}", vars("name", "Alice,Bob"))
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"Hello Alice", "Hello Bob"}, rows); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("short list repeats last value after continue", func(t *testing.T) {
		_, err := gen.Generate("{{a}}-{{b}}", vars("a", "1,2,3", "b", "x,y"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInconsistentCounts)
		assert.True(t, Recoverable(err))

		rows, ok := Continue(err)
		require.True(t, ok)
		if diff := cmp.Diff([]string{"1-x", "2-y", "3-y"}, rows); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty template", func(t *testing.T) {
		rows, err := gen.Generate("", nil)
		assert.ErrorIs(t, err, ErrEmptyTemplate)
		assert.Empty(t, rows)
	})

	t.Run("whitespace values", func(t *testing.T) {
		_, err := gen.Generate("{{v}}", vars("v", "   "))
		require.Error(t, err)

		var mve *MissingValuesError
		require.True(t, errors.As(err, &mve))
		assert.Equal(t, []string{"v"}, mve.Names)
		assert.ErrorIs(t, err, ErrMissingValues)
		assert.False(t, Recoverable(err))
	})
}

func TestGenerate_Preconditions(t *testing.T) {
	gen := NewGenerator(DefaultOptions())

	_, err := gen.Generate("plain text", nil)
	assert.ErrorIs(t, err, ErrNoVariablesFound)

	_, err = gen.Generate("{{a}}{{b}}{{c}}", vars("a", "", "b", "1", "c", "\t"))
	var mve *MissingValuesError
	require.ErrorAs(t, err, &mve)
	assert.Equal(t, []string{"a", "c"}, mve.Names)
	assert.Equal(t, "variables without values: a, c", err.Error())
}

func TestGenerate_FallbackSpace(t *testing.T) {
	gen := NewGenerator(Options{Delimiter: ",", Fallback: core.FallbackSpace})

	_, err := gen.Generate("{{a}}-{{b}}", vars("a", "1,2,3", "b", "x,y"))
	rows, ok := Continue(err)
	require.True(t, ok)
	assert.Equal(t, []string{"1-x", "2-y", "3- "}, rows)
}

func TestGenerate_RepeatedPlaceholders(t *testing.T) {
	gen := NewGenerator(DefaultOptions())

	rows, err := gen.Generate("{{x}} + {{x}} = {{y}}", vars("x", "1,2", "y", "2,4"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1 + 1 = 2", "2 + 2 = 4"}, rows)
}

func TestGenerate_ValuesAreNotRescanned(t *testing.T) {
	gen := NewGenerator(DefaultOptions())

	rows, err := gen.Generate("{{a}}|{{b}}", vars("a", "{{b}}", "b", "x"))
	require.NoError(t, err)
	assert.Equal(t, []string{"{{b}}|x"}, rows)
}

func TestGenerate_NamesWithRegexCharacters(t *testing.T) {
	gen := NewGenerator(DefaultOptions())

	rows, err := gen.Generate("id={{user.id}} n={{ n+1 }}", vars("user.id", "7", " n+1 ", "8"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id=7 n=8"}, rows)
}

func TestGenerate_NewlineDelimiter(t *testing.T) {
	gen := NewGenerator(Options{Delimiter: `\n`})

	rows, err := gen.Generate("UPDATE t SET c = 'v' WHERE id = {{id}};", vars("id", "1\n2\n3"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"UPDATE t SET c = 'v' WHERE id = 1;",
		"UPDATE t SET c = 'v' WHERE id = 2;",
		"UPDATE t SET c = 'v' WHERE id = 3;",
	}, rows)
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := NewGenerator(DefaultOptions())
	in := vars("a", "1,2,3", "b", "x,y")

	_, err1 := gen.Generate("{{a}}{{b}}", in)
	_, err2 := gen.Generate("{{a}}{{b}}", in)
	r1, _ := Continue(err1)
	r2, _ := Continue(err2)

	assert.Equal(t, r1, r2)
	assert.Equal(t, vars("a", "1,2,3", "b", "x,y"), in, "input must not be mutated")
}

func TestPrepare(t *testing.T) {
	gen := NewGenerator(DefaultOptions())

	plan, err := gen.Prepare("{{a}}{{b}}", vars("a", "1,2,3", "b", "x,y"))
	require.NoError(t, err)
	assert.False(t, plan.Consistent())
	assert.Equal(t, 3, plan.Rows())
	assert.Equal(t, []ValueCount{{Name: "a", Count: 3}, {Name: "b", Count: 2}}, plan.Counts())
	assert.Equal(t, core.FallbackLast, plan.Fallback)
}

func TestInconsistentCountsError_Message(t *testing.T) {
	gen := NewGenerator(DefaultOptions())
	_, err := gen.Generate("{{a}}{{b}}", vars("a", "1,2,3", "b", "x,y"))

	assert.Equal(t, "variables have different numbers of values (a=3, b=2)", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
		ok   bool
	}{
		{ErrEmptyTemplate, KindEmptyTemplate, true},
		{ErrNoVariablesFound, KindNoVariablesFound, true},
		{NewMissingValuesError([]string{"v"}), KindMissingVariableValues, true},
		{&InconsistentCountsError{}, KindInconsistentValueCounts, true},
		{errors.New("other"), 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := KindOf(tt.err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
	}

	assert.Equal(t, "MissingVariableValues", KindMissingVariableValues.String())
}

func TestContinue_NotRecoverable(t *testing.T) {
	rows, ok := Continue(ErrEmptyTemplate)
	assert.False(t, ok)
	assert.Nil(t, rows)

	_, ok = Continue(&InconsistentCountsError{})
	assert.False(t, ok)
}
