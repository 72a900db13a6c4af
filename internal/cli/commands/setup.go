package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tplgen/internal/cli/config"
	"github.com/leapstack-labs/tplgen/internal/cli/output"
	"github.com/leapstack-labs/tplgen/internal/notify"
	"github.com/leapstack-labs/tplgen/internal/session"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Catalog  *notify.Catalog
	Hub      *notify.Hub
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	if cfg.NoColor {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Catalog:  notify.NewCatalog(cfg.Locale),
		Hub:      notify.NewHub(),
	}
}

// RenderNotifications subscribes the renderer to the hub. hint tells the user
// how to trigger a notification's action. It returns the unsubscribe func.
func (c *CommandContext) RenderNotifications(hint string) func() {
	return c.Hub.Subscribe(notify.SinkFunc(func(n notify.Notification) {
		c.Logger.Debug("notification", "kind", n.Kind, "severity", n.Severity.String())
		c.Renderer.Notification(n, hint)
	}))
}

// NewSession creates a session using the configured delimiter, fallback and
// locale that reports to the hub.
func (c *CommandContext) NewSession() *session.Session {
	return session.New(session.Options{
		Delimiter: c.Cfg.Delimiter,
		Fallback:  c.Cfg.FallbackPolicy(),
		Catalog:   c.Catalog,
		Notifier:  c.Hub,
	})
}

// getConfig returns the current configuration, or the defaults when commands
// run without the root command (as in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
