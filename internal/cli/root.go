// Package cli provides the command-line interface for tplgen.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tplgen/internal/cli/commands"
	"github.com/leapstack-labs/tplgen/internal/cli/config"
	"github.com/leapstack-labs/tplgen/internal/notify"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tplgen",
		Short: "tplgen - expand templates across value lists",
		Long: `tplgen expands a text template containing {{variable}} placeholders once per
value position.

Give each variable a delimiter-separated list of values; row i of the output
substitutes the i-th value of every variable. Use it to turn a single SQL
statement, shell command or message into one line per id, host or name.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			logger.Debug("configuration loaded",
				"delimiter", cfg.Delimiter,
				"fallback", cfg.Fallback,
				"locale", cfg.Locale,
				"output", cfg.OutputFormat,
			)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}}\nBuilt %s (%s)\n", BuildDate, GitCommit))

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tplgen.yaml, searched upward)")
	rootCmd.PersistentFlags().StringP("delimiter", "d", "", `Value delimiter (default ","; use "newline" or \n for line breaks)`)
	rootCmd.PersistentFlags().String("fallback", "", "Value used when a variable has fewer values (last|space)")
	rootCmd.PersistentFlags().String("locale", "", "Language of notifications (en|pt)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json|table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.ValidOutputs(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("fallback", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"last", "space"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("locale", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return notify.SupportedLocales(), cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewVarsCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tplgen.

To load completions:

Bash:
  $ source <(tplgen completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tplgen completion bash > /etc/bash_completion.d/tplgen
  # macOS:
  $ tplgen completion bash > $(brew --prefix)/etc/bash_completion.d/tplgen

Zsh:
  $ tplgen completion zsh > "${fpath[1]}/_tplgen"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tplgen completion fish | source

  # To load completions for each session, execute once:
  $ tplgen completion fish > ~/.config/fish/completions/tplgen.fish

PowerShell:
  PS> tplgen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
