package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tplgen/internal/cli/output"
	"github.com/leapstack-labs/tplgen/internal/cli/prompt"
	"github.com/leapstack-labs/tplgen/internal/clipboard"
	"github.com/leapstack-labs/tplgen/internal/loader"
	"github.com/leapstack-labs/tplgen/internal/notify"
	"github.com/leapstack-labs/tplgen/internal/session"
	"github.com/leapstack-labs/tplgen/pkg/expand"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	SourceOptions
	Force       bool
	Interactive bool
	Copy        bool
	Watch       bool
}

// generateDeps are the terminal collaborators of generate, replaced in tests.
type generateDeps struct {
	prompter  prompt.Driver
	clipboard clipboard.Writer
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	return newGenerateCommand(generateDeps{})
}

func newGenerateCommand(deps generateDeps) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Expand a template across value lists",
		Long: `Expand a template once per value position.

Every {{name}} placeholder in the template is a variable. Each variable takes a
delimiter-separated list of values; row i of the output substitutes the i-th
value of every variable. When the lists differ in length, generation stops
with a warning unless --force is given; shorter lists then repeat their last
value (or a space, with --fallback space).`,
		Example: `  # Inline template and values
  tplgen generate -T "UPDATE t SET c = 'v' WHERE id = {{id}}" -V id=1,2,3

  # Template file with newline-separated values from a job file
  tplgen generate -f update.sql.tpl --values ids.yaml --delimiter newline

  # Ask for missing values and regenerate on every save
  tplgen generate -f greeting.tpl -i
  tplgen generate -f greeting.tpl --values names.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.TemplateSet = cmd.Flags().Changed("template")
			return runGenerate(cmd, opts, deps)
		},
	}

	addSourceFlags(cmd, &opts.SourceOptions)
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Generate even when variables have different numbers of values")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Prompt for missing values and confirm inconsistent counts")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "Copy the output to the clipboard")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Regenerate when the template or values file changes")
	cmd.MarkFlagsMutuallyExclusive("watch", "interactive")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions, deps generateDeps) error {
	c := NewCommandContext(cmd)
	defer c.RenderNotifications("--force")()

	if deps.prompter == nil {
		deps.prompter = prompt.NewSurvey()
	}
	if deps.clipboard == nil {
		deps.clipboard = clipboard.NewSystem()
	}

	if opts.Watch {
		return watchGenerate(cmd, c, opts, deps)
	}
	return generateOnce(cmd, c, opts, deps)
}

func generateOnce(cmd *cobra.Command, c *CommandContext, opts *GenerateOptions, deps generateDeps) error {
	ctx := cmd.Context()

	job, err := resolveJob(cmd, &opts.SourceOptions)
	if err != nil {
		return err
	}

	s := c.NewSession()
	if err := applySettings(cmd, s, job); err != nil {
		return err
	}
	s.SetTemplate(job.Template)
	if err := assignValues(c, s, job); err != nil {
		return err
	}

	if opts.Interactive {
		if err := promptMissing(ctx, s, deps.prompter); err != nil {
			return err
		}
	}

	rec := &notify.Recorder{}
	defer c.Hub.Subscribe(rec)()

	continued := false
	if genErr := s.Generate(); genErr != nil {
		if !expand.Recoverable(genErr) {
			return genErr
		}
		n, ok := rec.Last()
		if !ok || !n.HasAction() {
			return genErr
		}
		proceed := opts.Force
		if !proceed && opts.Interactive {
			proceed, err = deps.prompter.Confirm(ctx, prompt.ConfirmConfig{Message: n.Action.Label + "?"})
			if err != nil {
				return err
			}
		}
		if !proceed {
			return genErr
		}
		if err := n.Action.Run(); err != nil {
			return err
		}
		continued = true
	}

	c.Logger.Debug("generated rows", "rows", len(s.Output()), "continued", continued)

	counts := make(map[string]int)
	for _, vc := range expand.Counts(expand.ParseVariables(s.Variables(), s.Delimiter())) {
		counts[vc.Name] = vc.Count
	}
	if err := c.Renderer.Rows(output.GenerateOutput{
		Rows:      s.Output(),
		Count:     len(s.Output()),
		Counts:    counts,
		Continued: continued,
	}); err != nil {
		return err
	}

	if opts.Copy || c.Cfg.Copy {
		if err := s.Copy(ctx, deps.clipboard); err != nil {
			return fmt.Errorf("failed to copy output: %w", err)
		}
	}
	return nil
}

// applySettings applies the job's delimiter and fallback unless the matching
// flag was set explicitly.
func applySettings(cmd *cobra.Command, s *session.Session, job *loader.Job) error {
	if job.Delimiter != "" && !flagChanged(cmd, "delimiter") {
		if err := s.SetDelimiter(job.Delimiter); err != nil {
			return fmt.Errorf("invalid job delimiter: %w", err)
		}
	}
	if job.Fallback != "" && !flagChanged(cmd, "fallback") {
		s.SetFallback(job.Fallback)
	}
	return nil
}

// assignValues sets the job's values on the session in name order. Values for
// names that are not placeholders are reported and skipped.
func assignValues(c *CommandContext, s *session.Session, job *loader.Job) error {
	assignments, err := job.Assignments(s.Delimiter())
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(assignments)) {
		err := s.SetValues(name, assignments[name])
		if errors.Is(err, session.ErrUnknownVariable) {
			c.Logger.Warn("ignoring values for unknown variable", "name", name)
			c.Renderer.Warning(fmt.Sprintf("%s is not in the template, its values are ignored", expand.Token(name)))
		}
	}
	return nil
}

// promptMissing asks for the values of every blank variable.
func promptMissing(ctx context.Context, s *session.Session, p prompt.Driver) error {
	multiline := expand.NormalizeDelimiter(s.Delimiter()) == "\n"
	for _, v := range s.Variables() {
		if !v.Blank() {
			continue
		}
		raw, err := p.Input(ctx, prompt.InputConfig{
			Message:   fmt.Sprintf("Values for %s", expand.Token(v.Name)),
			Help:      fmt.Sprintf("Separate values with %q", s.Delimiter()),
			Multiline: multiline,
			Validator: prompt.NotBlank,
		})
		if err != nil {
			return err
		}
		if err := s.SetValues(v.Name, raw); err != nil {
			return err
		}
	}
	return nil
}
