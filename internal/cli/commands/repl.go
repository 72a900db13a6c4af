package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tplgen/internal/cli/output"
	"github.com/leapstack-labs/tplgen/internal/clipboard"
	"github.com/leapstack-labs/tplgen/internal/session"
	"github.com/leapstack-labs/tplgen/pkg/core"
	"github.com/leapstack-labs/tplgen/pkg/expand"
)

// replDeps are the terminal collaborators of repl, replaced in tests.
type replDeps struct {
	clipboard clipboard.Writer
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return newREPLCommand(replDeps{})
}

func newREPLCommand(deps replDeps) *cobra.Command {
	opts := &SourceOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Build and expand a template interactively",
		Long: `Start an interactive session holding one template, its variables and the
last generated output.

Lines that do not start with a dot are appended to the template. Dot-commands
set values, change the delimiter, generate and copy the result; type .help
for the list.`,
		Example: `  tplgen repl
  tplgen repl -f update.sql.tpl --values ids.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.TemplateSet = cmd.Flags().Changed("template")
			return runREPL(cmd, opts, deps)
		},
	}

	addSourceFlags(cmd, opts)
	return cmd
}

func runREPL(cmd *cobra.Command, opts *SourceOptions, deps replDeps) error {
	c := NewCommandContext(cmd)
	defer c.RenderNotifications(".continue")()

	if deps.clipboard == nil {
		deps.clipboard = clipboard.NewSystem()
	}

	r := newREPL(c, deps.clipboard)
	job, err := resolveJob(cmd, opts)
	switch {
	case errors.Is(err, errNoTemplate):
	case err != nil:
		return err
	default:
		if err := applySettings(cmd, r.s, job); err != nil {
			return err
		}
		r.s.SetTemplate(job.Template)
		if err := assignValues(c, r.s, job); err != nil {
			return err
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tplgen> ",
		HistoryFile:     historyFile(),
		AutoComplete:    r.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(c.Renderer.Writer(), "tplgen REPL")
	_, _ = fmt.Fprintln(c.Renderer.Writer(), "Type template lines, .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(c.Renderer.Writer())

	ctx := cmd.Context()
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if quit := r.handle(ctx, line); quit {
			break
		}
	}
	return nil
}

// historyFile returns the REPL history path under the user cache directory,
// or "" when there is none.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "tplgen")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// repl executes REPL input against one session.
type repl struct {
	c    *CommandContext
	s    *session.Session
	clip clipboard.Writer
}

func newREPL(c *CommandContext, clip clipboard.Writer) *repl {
	return &repl{c: c, s: c.NewSession(), clip: clip}
}

func (r *repl) out() io.Writer    { return r.c.Renderer.Writer() }
func (r *repl) errOut() io.Writer { return r.c.Renderer.ErrWriter() }

func (r *repl) printErr(err error) {
	_, _ = fmt.Fprintf(r.errOut(), "Error: %v\n", err)
}

// handle runs one line of input. It reports whether the REPL should exit.
func (r *repl) handle(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if !strings.HasPrefix(trimmed, ".") {
		r.appendLine(line)
		return false
	}

	command, arg, _ := strings.Cut(trimmed, " ")
	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.out())

	case ".template":
		r.s.SetTemplate(arg)
		r.printVarNames()

	case ".append":
		r.appendLine(arg)

	case ".show":
		if r.s.Template() == "" {
			r.c.Renderer.Muted("(empty template)")
			return false
		}
		_, _ = fmt.Fprintln(r.out(), r.s.Template())

	case ".vars":
		r.printVars()

	case ".set":
		name, raw, err := parseAssignment(arg)
		if err != nil {
			_, _ = fmt.Fprintln(r.errOut(), "Usage: .set <name>=<values> or .set {{name}}=<values>")
			return false
		}
		if err := r.s.SetValues(name, raw); err != nil {
			r.printErr(err)
		}

	case ".delim", ".delimiter":
		if arg == "" {
			_, _ = fmt.Fprintf(r.out(), "delimiter: %q\n", r.s.Delimiter())
			return false
		}
		if err := r.s.SetDelimiter(arg); err != nil {
			r.printErr(err)
		}

	case ".fallback":
		if arg == "" {
			_, _ = fmt.Fprintf(r.out(), "fallback: %s\n", r.s.Fallback())
			return false
		}
		p, ok := core.ParseFallbackPolicy(arg)
		if !ok {
			_, _ = fmt.Fprintln(r.errOut(), "Usage: .fallback last|space")
			return false
		}
		r.s.SetFallback(p)

	case ".add":
		name := r.s.AddVariable()
		_, _ = fmt.Fprintf(r.out(), "added %s\n", expand.Token(name))

	case ".generate", ".gen":
		if err := r.s.Generate(); err != nil {
			if _, ok := expand.KindOf(err); !ok {
				r.printErr(err)
			}
			return false
		}
		r.printOutput()

	case ".continue":
		if err := r.s.Continue(); err != nil {
			r.printErr(err)
			return false
		}
		r.printOutput()

	case ".output":
		if len(r.s.Output()) == 0 {
			r.c.Renderer.Muted("(no output)")
			return false
		}
		r.printOutput()

	case ".copy":
		if err := r.s.Copy(ctx, r.clip); err != nil {
			r.printErr(err)
		}

	case ".clear":
		r.s.Clear()
		r.c.Renderer.Muted("cleared")

	default:
		_, _ = fmt.Fprintf(r.errOut(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

// appendLine adds text to the template as a new line.
func (r *repl) appendLine(text string) {
	if r.s.Template() != "" {
		text = "\n" + text
	}
	before := len(r.s.Variables())
	r.s.AppendTemplate(text)
	if len(r.s.Variables()) != before {
		r.printVarNames()
	}
}

func (r *repl) printVarNames() {
	vars := r.s.Variables()
	if len(vars) == 0 {
		r.c.Renderer.Muted("variables: none")
		return
	}
	r.c.Renderer.Muted("variables: " + strings.Join(core.VariableNames(vars), ", "))
}

func (r *repl) printVars() {
	vars := r.s.Variables()
	if len(vars) == 0 {
		r.c.Renderer.Muted("No variables. Add {{name}} placeholders to the template.")
		return
	}
	styles := r.c.Renderer.Styles()
	for _, v := range vars {
		values := styles.Muted.Render("(no values)")
		if !v.Blank() {
			n := len(expand.ParseValues(v.RawValues, r.s.Delimiter()))
			values = fmt.Sprintf("%s %s", v.RawValues, styles.Muted.Render(fmt.Sprintf("[%d]", n)))
		}
		_, _ = fmt.Fprintf(r.out(), "  %s = %s\n", styles.Name.Render(v.Name), values)
	}
}

func (r *repl) printOutput() {
	rows := r.s.Output()
	if err := r.c.Renderer.Rows(output.GenerateOutput{Rows: rows, Count: len(rows)}); err != nil {
		r.printErr(err)
	}
}

// completer completes dot-commands and, after .set, variable names.
func (r *repl) completer() *readline.PrefixCompleter {
	names := func(string) []string {
		vars := r.s.Variables()
		out := make([]string, len(vars))
		for i, v := range vars {
			out[i] = v.Name + "="
		}
		return out
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".template"),
		readline.PcItem(".append"),
		readline.PcItem(".show"),
		readline.PcItem(".vars"),
		readline.PcItem(".set", readline.PcItemDynamic(names)),
		readline.PcItem(".delim", readline.PcItem(expand.NamedNewline)),
		readline.PcItem(".fallback",
			readline.PcItem(string(core.FallbackLast)),
			readline.PcItem(string(core.FallbackSpace)),
		),
		readline.PcItem(".add"),
		readline.PcItem(".generate"),
		readline.PcItem(".continue"),
		readline.PcItem(".output"),
		readline.PcItem(".copy"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
	)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  <text>               Append a line to the template
  .template <text>     Replace the template
  .append <text>       Append a line to the template
  .show                Print the template
  .vars                List variables and their values
  .set <name>=<values> Set the values of a variable ({{name}}=<values> when the name has '=')
  .delim [d]           Show or set the delimiter (use "newline" or \n for line breaks)
  .fallback [p]        Show or set the short-list fallback (last|space)
  .add                 Append a new {{varN}} placeholder
  .generate            Expand the template
  .continue            Expand anyway after an inconsistent count warning
  .output              Print the last output
  .copy                Copy the last output to the clipboard
  .clear               Reset template, variables and output
  .quit / .exit        Exit the REPL
`
	_, _ = fmt.Fprintln(w, help)
}
