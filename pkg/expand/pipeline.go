package expand

import (
	"errors"

	"github.com/leapstack-labs/tplgen/pkg/core"
)

// Options configures a Generator.
type Options struct {
	// Delimiter separates values inside a variable's raw string.
	Delimiter string
	// Fallback is applied when a variable has fewer values than the row count.
	Fallback core.FallbackPolicy
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Delimiter: DefaultDelimiter, Fallback: core.FallbackLast}
}

// Plan is a validated, parsed generation request ready to be expanded.
type Plan struct {
	Template string
	Parsed   []core.ParsedVariable
	Fallback core.FallbackPolicy
}

// Counts returns the value count of every variable.
func (p *Plan) Counts() []ValueCount { return Counts(p.Parsed) }

// Consistent reports whether all variables have the same number of values.
func (p *Plan) Consistent() bool { return Consistent(p.Parsed) }

// Rows returns the number of rows Expand will produce.
func (p *Plan) Rows() int { return MaxCount(p.Parsed) }

// Expand produces the output rows for the plan.
func (p *Plan) Expand() []string {
	return Expand(p.Template, p.Parsed, p.Fallback)
}

// Generator runs the validate, parse, check and expand pipeline.
type Generator struct {
	opts Options
}

// NewGenerator creates a generator. A zero Fallback defaults to core.FallbackLast.
// The delimiter is used as given, including an empty one.
func NewGenerator(opts Options) *Generator {
	if opts.Fallback == "" {
		opts.Fallback = core.FallbackLast
	}
	return &Generator{opts: opts}
}

// Options returns the generator's options.
func (g *Generator) Options() Options {
	return g.opts
}

// Prepare checks the halting preconditions and parses the values.
//
// vars must be the reconciled variable list for template (see Sync). The
// returned plan may still be inconsistent; Generate turns that into an error.
func (g *Generator) Prepare(template string, vars []core.Variable) (*Plan, error) {
	if template == "" {
		return nil, ErrEmptyTemplate
	}
	if len(vars) == 0 {
		return nil, ErrNoVariablesFound
	}

	var missing []string
	for _, v := range vars {
		if v.Blank() {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		return nil, NewMissingValuesError(missing)
	}

	return &Plan{
		Template: template,
		Parsed:   ParseVariables(vars, g.opts.Delimiter),
		Fallback: g.opts.Fallback,
	}, nil
}

// Generate runs the full pipeline.
//
// When value counts differ it returns an *InconsistentCountsError and no rows;
// pass that error to Continue to expand anyway.
func (g *Generator) Generate(template string, vars []core.Variable) ([]string, error) {
	plan, err := g.Prepare(template, vars)
	if err != nil {
		return nil, err
	}
	if !plan.Consistent() {
		return nil, NewInconsistentCountsError(plan)
	}
	return plan.Expand(), nil
}

// Continue expands the plan carried by a recoverable error.
// It returns false if err is not recoverable.
func Continue(err error) ([]string, bool) {
	var ice *InconsistentCountsError
	if !errors.As(err, &ice) || ice.Plan == nil {
		return nil, false
	}
	return ice.Plan.Expand(), true
}
