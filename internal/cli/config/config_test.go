package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tplgen/pkg/core"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("delimiter", "", "")
	fs.String("fallback", "", "")
	fs.String("locale", "", "")
	fs.StringP("output", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("no-color", false, "")
	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "tplgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDelimiter, cfg.Delimiter)
	assert.Equal(t, DefaultFallback, cfg.Fallback)
	assert.Equal(t, DefaultLocale, cfg.Locale)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FileFoundUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	writeConfig(t, root, "delimiter: \";\"\nfallback: space\nlocale: pt-BR\nwatch_debounce: 1s\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, core.FallbackSpace, cfg.FallbackPolicy())
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.Equal(t, "tplgen.yaml", filepath.Base(GetConfigFileUsed()))

	wantRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(filepath.Dir(GetConfigFileUsed()))
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestLoadConfig_Precedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, "delimiter: \";\"\noutput: json\nlocale: pt\n")

	t.Setenv("TPLGEN_OUTPUT", "table")
	t.Setenv("TPLGEN_NO_COLOR", "true")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--delimiter", "|"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "|", cfg.Delimiter, "flag beats file")
	assert.Equal(t, "table", cfg.OutputFormat, "env beats file")
	assert.Equal(t, "pt", cfg.Locale, "file beats default")
	assert.True(t, cfg.NoColor)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeConfig(t, dir, "output: json\n")

	flags := newFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"bad fallback", "fallback: first\n", "unknown fallback"},
		{"bad output", "output: xml\n", "unknown output format"},
		{"blank delimiter", "delimiter: \"  \"\n", "delimiter must not be empty"},
		{"unknown locale", "locale: xx\n", `unsupported locale "xx"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			t.Chdir(dir)
			path := writeConfig(t, dir, tt.content)

			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	_, err := LoadConfig("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Delimiter = `\n`
	assert.NoError(t, cfg.Validate())

	cfg.Locale = "pt-BR"
	assert.NoError(t, cfg.Validate())

	cfg.Locale = "not a locale"
	assert.Error(t, cfg.Validate())
	cfg.Locale = DefaultLocale

	cfg.WatchDebounce = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "discard logger fallback")

	var buf bytes.Buffer
	logger := NewLogger(&buf, true)
	ctx := WithLogger(context.Background(), logger)

	GetLogger(ctx).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")

	buf.Reset()
	NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestValidOutputs(t *testing.T) {
	assert.Contains(t, ValidOutputs(), "table")
	assert.Contains(t, ValidOutputs(), "auto")
}
