package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tplgen/internal/loader"
)

var errNoTemplate = errors.New("no template given: use --template, --file or a job file with --values")

// SourceOptions selects where a command reads its template and values from.
type SourceOptions struct {
	Template    string
	TemplateSet bool
	File        string
	ValuesFile  string
	Vars        []string
}

func addSourceFlags(cmd *cobra.Command, opts *SourceOptions) {
	cmd.Flags().StringVarP(&opts.Template, "template", "T", "", "Template text")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the template from a file (- for stdin)")
	cmd.Flags().StringVar(&opts.ValuesFile, "values", "", "YAML job file with template, delimiter, fallback and variables")
	cmd.Flags().StringArrayVarP(&opts.Vars, "var", "V", nil, "Set values for a variable (name=values or {{name}}=values, repeatable)")
	cmd.MarkFlagsMutuallyExclusive("template", "file")
}

// resolveJob assembles the job from the values file, the template source and
// the --var assignments. A template from --template or --file replaces the
// job file's template; frontmatter fills in what the job file leaves unset.
func resolveJob(cmd *cobra.Command, opts *SourceOptions) (*loader.Job, error) {
	job := &loader.Job{Variables: map[string]loader.Values{}}
	if opts.ValuesFile != "" {
		j, err := loader.LoadJob(opts.ValuesFile)
		if err != nil {
			return nil, err
		}
		job = j
	}

	switch {
	case opts.TemplateSet:
		job.Template = opts.Template
	case opts.File != "":
		doc, err := readTemplate(cmd.InOrStdin(), opts.File)
		if err != nil {
			return nil, err
		}
		job.Template = doc.Template
		job.TemplateFile = doc.Job.Path
		job.Merge(doc.Job)
	case job.Template != "":
	default:
		return nil, errNoTemplate
	}

	for _, assignment := range opts.Vars {
		name, raw, err := parseAssignment(assignment)
		if err != nil {
			return nil, err
		}
		job.Variables[name] = loader.Values{Raw: raw}
	}
	return job, nil
}

func readTemplate(stdin io.Reader, path string) (*loader.TemplateDocument, error) {
	if path != "-" {
		return loader.LoadTemplate(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read template from stdin: %w", err)
	}
	return loader.ExtractFrontmatter(string(data))
}

// parseAssignment splits "name=values" at the first '='. A name containing
// '=' is written as its placeholder, "{{a=b}}=values".
func parseAssignment(s string) (name, raw string, err error) {
	if rest, ok := strings.CutPrefix(s, "{{"); ok {
		if name, raw, ok := strings.Cut(rest, "}}="); ok && name != "" && !strings.Contains(name, "}") {
			return name, raw, nil
		}
	}
	name, raw, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid --var %q: expected name=values or {{name}}=values", s)
	}
	return name, raw, nil
}

// flagChanged reports whether a local or inherited flag was set explicitly.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}
