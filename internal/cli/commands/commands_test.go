package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGenerateCommand(t *testing.T) {
	cmd := NewGenerateCommand()

	assert.Equal(t, "generate", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.Equal(t, []string{"gen"}, cmd.Aliases)

	// Verify flags exist (delimiter, fallback and output are global flags on root)
	flags := []string{"template", "file", "values", "var", "force", "interactive", "copy", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewVarsCommand(t *testing.T) {
	cmd := NewVarsCommand()

	assert.Equal(t, "vars", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	for _, flag := range []string{"template", "file", "values"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewREPLCommand(t *testing.T) {
	cmd := NewREPLCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantRaw  string
		wantErr  bool
	}{
		{in: "id=1,2,3", wantName: "id", wantRaw: "1,2,3"},
		{in: "expr=a=b", wantName: "expr", wantRaw: "a=b"},
		{in: " id =x", wantName: " id ", wantRaw: "x"},
		{in: "empty=", wantName: "empty", wantRaw: ""},
		{in: "novalue", wantErr: true},
		{in: "=1", wantErr: true},
		{in: "{{a=b}}=1,2", wantName: "a=b", wantRaw: "1,2"},
		{in: "{{id}}=x=y", wantName: "id", wantRaw: "x=y"},
		{in: "{{}}=1", wantName: "{{}}", wantRaw: "1"},
		{in: "{{a}b}}=1", wantName: "{{a}b}}", wantRaw: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, raw, err := parseAssignment(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantRaw, raw)
		})
	}
}
