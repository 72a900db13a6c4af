// Package loader reads generation jobs from YAML job files and from templates
// carrying a YAML frontmatter header.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/tplgen/pkg/core"
	"github.com/leapstack-labs/tplgen/pkg/expand"
)

// Job is a generation request read from YAML.
//
//	template: "UPDATE t SET c = 'v' WHERE id = {{id}}"
//	delimiter: ","
//	fallback: last
//	variables:
//	  id: "1,2,3"
//	  name: [Alice, Bob, Carol]
type Job struct {
	Template     string
	TemplateFile string
	Delimiter    string
	Fallback     core.FallbackPolicy
	Variables    map[string]Values
	// Path is the file the job was read from, if any.
	Path string
}

// Values holds a variable's values as written in YAML: either one raw
// delimited string or a list of individual values.
type Values struct {
	Raw  string
	List []string
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&v.Raw)
	case yaml.SequenceNode:
		list := []string{}
		if err := node.Decode(&list); err != nil {
			return err
		}
		v.List = list
		return nil
	default:
		return fmt.Errorf("line %d: values must be a string or a list", node.Line)
	}
}

// RawValues returns the raw string handed to the value parser. Lists are
// joined with delimiter. A list item containing the delimiter would be split
// into several values, so it is rejected with a ListValueError.
func (v Values) RawValues(delimiter string) (string, error) {
	if v.List == nil {
		return v.Raw, nil
	}
	delim := expand.NormalizeDelimiter(delimiter)
	if delim != "" {
		for i, item := range v.List {
			if strings.Contains(strings.ReplaceAll(item, "\r\n", "\n"), delim) {
				return "", &ListValueError{Index: i, Value: item, Delimiter: delimiter}
			}
		}
	}
	return strings.Join(v.List, delim), nil
}

// jobYAML is the YAML shape of a Job.
type jobYAML struct {
	Template     string            `yaml:"template"`
	TemplateFile string            `yaml:"template_file"`
	Delimiter    string            `yaml:"delimiter"`
	Fallback     string            `yaml:"fallback"`
	Variables    map[string]Values `yaml:"variables"`
}

var knownJobFields = map[string]bool{
	"template":      true,
	"template_file": true,
	"delimiter":     true,
	"fallback":      true,
	"variables":     true,
}

// ParseJob parses a job document. Unknown fields are rejected.
func ParseJob(data []byte) (*Job, error) {
	// First, decode into a map to check for unknown fields
	var rawMap map[string]any
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	for field := range rawMap {
		if !knownJobFields[field] {
			return nil, &UnknownFieldError{Field: field}
		}
	}

	var raw jobYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("failed to parse job: %v", err)}
	}

	fallback, ok := core.ParseFallbackPolicy(raw.Fallback)
	if !ok {
		return nil, &ParseError{
			Message: fmt.Sprintf("invalid fallback value: %q, must be one of: last, space", raw.Fallback),
		}
	}
	if raw.Template != "" && raw.TemplateFile != "" {
		return nil, &ParseError{Message: "template and template_file are mutually exclusive"}
	}

	job := &Job{
		Template:     raw.Template,
		TemplateFile: raw.TemplateFile,
		Delimiter:    raw.Delimiter,
		Fallback:     fallback,
		Variables:    raw.Variables,
	}
	if job.Variables == nil {
		job.Variables = map[string]Values{}
	}
	// An absent fallback key keeps the configured policy
	if raw.Fallback == "" {
		job.Fallback = ""
	}
	return job, nil
}

// LoadJob reads a job file. A template_file entry is resolved relative to the
// job file and read into Template.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided CLI input
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	job, err := ParseJob(data)
	if err != nil {
		return nil, withFile(err, path)
	}
	job.Path = path

	if job.TemplateFile != "" {
		tplPath := job.TemplateFile
		if !filepath.IsAbs(tplPath) {
			tplPath = filepath.Join(filepath.Dir(path), tplPath)
		}
		doc, err := LoadTemplate(tplPath)
		if err != nil {
			return nil, err
		}
		job.TemplateFile = tplPath
		job.Template = doc.Template
		job.Merge(doc.Job)
	}
	return job, nil
}

// Merge fills fields of j that are unset from other. Variables already present
// in j win.
func (j *Job) Merge(other *Job) {
	if other == nil {
		return
	}
	if j.Template == "" {
		j.Template = other.Template
	}
	if j.Delimiter == "" {
		j.Delimiter = other.Delimiter
	}
	if j.Fallback == "" {
		j.Fallback = other.Fallback
	}
	if j.Variables == nil {
		j.Variables = map[string]Values{}
	}
	for name, v := range other.Variables {
		if _, ok := j.Variables[name]; !ok {
			j.Variables[name] = v
		}
	}
}

// Assignments returns name to raw values using delimiter for list values.
func (j *Job) Assignments(delimiter string) (map[string]string, error) {
	out := make(map[string]string, len(j.Variables))
	for name, v := range j.Variables {
		raw, err := v.RawValues(delimiter)
		if err != nil {
			var le *ListValueError
			if errors.As(err, &le) {
				le.Variable = name
				le.File = j.Path
			}
			return nil, err
		}
		out[name] = raw
	}
	return out, nil
}
