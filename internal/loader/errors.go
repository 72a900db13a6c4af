package loader

import (
	"errors"
	"fmt"
)

// ParseError represents a job or frontmatter parsing error.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// UnknownFieldError represents an unknown top-level key.
type UnknownFieldError struct {
	File  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown field %q, expected one of: template, template_file, delimiter, fallback, variables", e.Field)
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

// ListValueError reports a list item that contains the delimiter and would be
// split into several values.
type ListValueError struct {
	File      string
	Variable  string
	Index     int
	Value     string
	Delimiter string
}

func (e *ListValueError) Error() string {
	msg := fmt.Sprintf("variable %q: list item %d (%q) contains the delimiter %q", e.Variable, e.Index+1, e.Value, e.Delimiter)
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

// withFile records path on loader errors that do not carry one yet.
func withFile(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.File == "" {
		pe.File = path
	}
	var ue *UnknownFieldError
	if errors.As(err, &ue) && ue.File == "" {
		ue.File = path
	}
	return err
}
