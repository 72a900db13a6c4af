// Package session holds the in-memory Template/Variables/Output state of one
// user session and the operations a front end calls on it.
//
// Every template mutation re-extracts the placeholder names and reconciles the
// variable list, so the variables are always exactly the placeholders present
// in the template.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/tplgen/internal/clipboard"
	"github.com/leapstack-labs/tplgen/internal/notify"
	"github.com/leapstack-labs/tplgen/pkg/core"
	"github.com/leapstack-labs/tplgen/pkg/expand"
)

// Session errors.
var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrEmptyDelimiter  = errors.New("delimiter must not be empty")
	ErrNothingPending  = errors.New("no generation is waiting to be continued")
	ErrNoOutput        = errors.New("nothing has been generated")
)

// Options configures a new Session.
type Options struct {
	// Delimiter is trimmed like SetDelimiter; blank means ",".
	Delimiter string
	Fallback  core.FallbackPolicy
	// Catalog provides display strings; defaults to English.
	Catalog *notify.Catalog
	// Notifier receives every user-facing notification; may be nil.
	Notifier notify.Sink
}

// Session is a single template generator session. It is not safe for
// concurrent use.
type Session struct {
	template  string
	vars      []core.Variable
	output    []string
	delimiter string
	fallback  core.FallbackPolicy
	pending   *expand.Plan

	catalog  *notify.Catalog
	notifier notify.Sink
}

// New creates an empty session.
func New(opts Options) *Session {
	defaults := expand.DefaultOptions()
	opts.Delimiter = strings.TrimSpace(opts.Delimiter)
	if opts.Delimiter == "" {
		opts.Delimiter = defaults.Delimiter
	}
	if opts.Fallback == "" {
		opts.Fallback = defaults.Fallback
	}
	if opts.Catalog == nil {
		opts.Catalog = notify.NewCatalog("")
	}
	return &Session{
		vars:      []core.Variable{},
		delimiter: opts.Delimiter,
		fallback:  opts.Fallback,
		catalog:   opts.Catalog,
		notifier:  opts.Notifier,
	}
}

// Template returns the current template.
func (s *Session) Template() string { return s.template }

// Delimiter returns the current delimiter.
func (s *Session) Delimiter() string { return s.delimiter }

// Fallback returns the current short-list fallback policy.
func (s *Session) Fallback() core.FallbackPolicy { return s.fallback }

// Variables returns a copy of the current variables in order.
func (s *Session) Variables() []core.Variable {
	return append([]core.Variable{}, s.vars...)
}

// Output returns a copy of the last generated rows.
func (s *Session) Output() []string {
	return append([]string(nil), s.output...)
}

// JoinedOutput returns the rows separated by newlines, as copied to the clipboard.
func (s *Session) JoinedOutput() string {
	return strings.Join(s.output, "\n")
}

// Pending reports whether an inconsistent generation is waiting for Continue.
func (s *Session) Pending() bool { return s.pending != nil }

// SetTemplate replaces the template and reconciles the variables.
func (s *Session) SetTemplate(template string) {
	s.template = template
	s.sync()
}

// AppendTemplate appends text to the template and reconciles the variables.
func (s *Session) AppendTemplate(text string) {
	s.SetTemplate(s.template + text)
}

// AddVariable appends a new {{varN}} placeholder to the template, where N is
// one more than the current variable count, bumped until the name is unused.
// It returns the new name.
func (s *Session) AddVariable() string {
	taken := make(map[string]struct{}, len(s.vars))
	for _, v := range s.vars {
		taken[v.Name] = struct{}{}
	}

	n := len(s.vars) + 1
	name := fmt.Sprintf("var%d", n)
	for {
		if _, ok := taken[name]; !ok {
			break
		}
		n++
		name = fmt.Sprintf("var%d", n)
	}

	s.AppendTemplate(expand.Token(name))
	return name
}

// SetValues sets the raw values of an existing variable.
func (s *Session) SetValues(name, raw string) error {
	for i := range s.vars {
		if s.vars[i].Name == name {
			s.vars[i].RawValues = raw
			s.pending = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownVariable, name)
}

// SetDelimiter changes the delimiter. Surrounding whitespace is trimmed.
func (s *Session) SetDelimiter(delimiter string) error {
	delimiter = strings.TrimSpace(delimiter)
	if delimiter == "" {
		return ErrEmptyDelimiter
	}
	s.delimiter = delimiter
	s.pending = nil
	return nil
}

// SetFallback changes the short-list fallback policy.
func (s *Session) SetFallback(p core.FallbackPolicy) {
	s.fallback = p
	s.pending = nil
}

// Generate runs the generation pipeline.
//
// On success the output is replaced. On failure the output is left unchanged
// and a notification is raised; for inconsistent value counts the parsed
// values are kept so Continue can finish the generation.
func (s *Session) Generate() error {
	gen := expand.NewGenerator(expand.Options{Delimiter: s.delimiter, Fallback: s.fallback})

	rows, err := gen.Generate(s.template, s.vars)
	if err != nil {
		s.pending = nil
		var ice *expand.InconsistentCountsError
		if errors.As(err, &ice) {
			s.pending = ice.Plan
		}
		s.notifyError(err)
		return err
	}

	s.pending = nil
	s.output = rows
	return nil
}

// Continue expands the values kept by an inconsistent Generate, using the
// fallback policy for the shorter lists.
func (s *Session) Continue() error {
	if s.pending == nil {
		return ErrNothingPending
	}
	s.output = s.pending.Expand()
	s.pending = nil
	return nil
}

// Clear resets the template, variables and output.
func (s *Session) Clear() {
	s.template = ""
	s.vars = []core.Variable{}
	s.output = nil
	s.pending = nil
}

// Copy writes the joined output to w and raises the copied notification.
func (s *Session) Copy(ctx context.Context, w clipboard.Writer) error {
	if len(s.output) == 0 {
		return ErrNoOutput
	}
	if err := w.WriteText(ctx, s.JoinedOutput()); err != nil {
		return err
	}
	s.notify(s.catalog.Copied())
	return nil
}

func (s *Session) sync() {
	s.vars = expand.Sync(s.template, s.vars)
	s.pending = nil
}

func (s *Session) notifyError(err error) {
	n, ok := s.catalog.ForError(err, s.Continue)
	if ok {
		s.notify(n)
	}
}

func (s *Session) notify(n notify.Notification) {
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}
