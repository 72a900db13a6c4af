package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/tplgen/internal/notify"
	"github.com/leapstack-labs/tplgen/pkg/core"
)

// Renderer writes command output in the configured mode.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	isTTY   bool
	mode    OutputMode
	colored bool
	styles  *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
// Colors are disabled when NO_COLOR is set or out is not a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	colored := isTTY && !termenv.EnvNoColor()
	return &Renderer{
		out:     out,
		errOut:  errOut,
		isTTY:   isTTY,
		mode:    mode,
		colored: colored,
		styles:  NewStyles(out, colored),
	}
}

// DisableColor turns off styling.
func (r *Renderer) DisableColor() {
	r.colored = false
	r.styles = NewStyles(r.out, false)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether stdout is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the terminal styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// EffectiveMode resolves ModeAuto: terminals get text, everything else Markdown.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header prints a styled section header.
func (r *Renderer) Header(text string) {
	r.Println(r.styles.Header.Render(text))
}

// Muted prints dimmed text.
func (r *Renderer) Muted(text string) {
	r.Println(r.styles.Muted.Render(text))
}

// Success prints a success line to stderr.
func (r *Renderer) Success(text string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Success.Render("✓ "+text))
}

// Warning prints a warning line to stderr.
func (r *Renderer) Warning(text string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+text))
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var titleCaser = cases.Title(language.English)

// SeverityStyle returns the style for a notification severity.
func (r *Renderer) SeverityStyle(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return r.styles.Error
	case core.SeverityWarning:
		return r.styles.Warning
	case core.SeveritySuccess:
		return r.styles.Success
	default:
		return r.styles.Info
	}
}

// Notification writes a notification to stderr:
//
//	Warning: Inconsistent value counts
//	  All variables should have the same number of values.
//	  → Continue anyway (.continue)
//
// hint, when non-empty, tells the user how to trigger the action.
func (r *Renderer) Notification(n notify.Notification, hint string) {
	label := titleCaser.String(n.Severity.String())
	style := r.SeverityStyle(n.Severity)

	var b strings.Builder
	b.WriteString(style.Render(label+":") + " " + r.styles.Bold.Render(n.Title) + "\n")
	if n.Description != "" {
		b.WriteString("  " + n.Description + "\n")
	}
	if n.Action != nil {
		line := "  → " + n.Action.Label
		if hint != "" {
			line += " (" + hint + ")"
		}
		b.WriteString(r.styles.Muted.Render(line) + "\n")
	}
	_, _ = io.WriteString(r.errOut, b.String())
}
