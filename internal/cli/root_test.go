package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tplgen/internal/cli/config"
	"github.com/leapstack-labs/tplgen/internal/cli/output"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	cfgFile = ""

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "vars", "repl", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	for _, flag := range []string{"config", "delimiter", "fallback", "locale", "output", "verbose", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_GenerateWithGlobalFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := executeRoot(t, "generate", "-o", "json", "-d", ";", "-T", "{{a}}", "-V", "a=1;2")
	require.NoError(t, err)

	var got output.GenerateOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []string{"1", "2"}, got.Rows)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tplgen.yaml"),
		[]byte("delimiter: \"|\"\noutput: text\n"), 0o600))
	t.Chdir(dir)

	stdout, _, err := executeRoot(t, "generate", "-T", "<{{a}}>", "-V", "a=x|y")
	require.NoError(t, err)
	assert.Equal(t, "<x>\n<y>\n", stdout)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := executeRoot(t, "generate", "--fallback", "sometimes", "-T", "{{a}}", "-V", "a=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	t.Chdir(t.TempDir())

	_, stderr, err := executeRoot(t, "-v", "-o", "text", "generate", "-T", "{{a}}", "-V", "a=1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "configuration loaded")
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tplgen")
}
