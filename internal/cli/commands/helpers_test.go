package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tplgen/internal/cli/config"
	"github.com/leapstack-labs/tplgen/internal/cli/testutil"
)

// loadTestConfig loads configuration from an empty working directory with the
// given root-level flags, e.g. "--output=text".
func loadTestConfig(t *testing.T, args ...string) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(t.TempDir())

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("delimiter", "", "")
	fs.String("fallback", "", "")
	fs.String("locale", "", "")
	fs.String("output", "", "")
	fs.Bool("copy", false, "")
	require.NoError(t, fs.Parse(args))

	_, err := config.LoadConfig("", fs)
	require.NoError(t, err)
}

// execute runs cmd with args and returns stdout and ANSI-free stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err = cmd.Execute()
	return out.String(), testutil.StripANSI(errOut.String()), err
}
