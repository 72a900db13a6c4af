package expand

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the generation failure outcomes.
type Kind int

// Kind constants, one per precondition.
const (
	KindEmptyTemplate Kind = iota + 1
	KindNoVariablesFound
	KindMissingVariableValues
	KindInconsistentValueCounts
)

func (k Kind) String() string {
	switch k {
	case KindEmptyTemplate:
		return "EmptyTemplate"
	case KindNoVariablesFound:
		return "NoVariablesFound"
	case KindMissingVariableValues:
		return "MissingVariableValues"
	case KindInconsistentValueCounts:
		return "InconsistentValueCounts"
	default:
		return "Unknown"
	}
}

// Sentinel errors for matching with errors.Is.
var (
	ErrEmptyTemplate      = errors.New("template is empty")
	ErrNoVariablesFound   = errors.New("no variables found in template")
	ErrMissingValues      = errors.New("variables without values")
	ErrInconsistentCounts = errors.New("variables have different numbers of values")
)

// MissingValuesError names every variable whose raw values are blank.
type MissingValuesError struct {
	Names []string
}

// NewMissingValuesError creates a missing values error for the given names.
func NewMissingValuesError(names []string) *MissingValuesError {
	return &MissingValuesError{Names: names}
}

func (e *MissingValuesError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingValues, strings.Join(e.Names, ", "))
}

// Is matches ErrMissingValues.
func (e *MissingValuesError) Is(target error) bool {
	return target == ErrMissingValues
}

// InconsistentCountsError reports variables with differing value counts.
// It is recoverable: Plan holds the parsed values so generation can continue
// with the fallback policy.
type InconsistentCountsError struct {
	Counts []ValueCount
	Plan   *Plan
}

// NewInconsistentCountsError creates an inconsistent counts error for plan.
func NewInconsistentCountsError(plan *Plan) *InconsistentCountsError {
	return &InconsistentCountsError{Counts: plan.Counts(), Plan: plan}
}

func (e *InconsistentCountsError) Error() string {
	parts := make([]string, len(e.Counts))
	for i, c := range e.Counts {
		parts[i] = fmt.Sprintf("%s=%d", c.Name, c.Count)
	}
	return fmt.Sprintf("%v (%s)", ErrInconsistentCounts, strings.Join(parts, ", "))
}

// Is matches ErrInconsistentCounts.
func (e *InconsistentCountsError) Is(target error) bool {
	return target == ErrInconsistentCounts
}

// KindOf classifies a generation error. It returns false for errors that did
// not come from this package.
func KindOf(err error) (Kind, bool) {
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, ErrEmptyTemplate):
		return KindEmptyTemplate, true
	case errors.Is(err, ErrNoVariablesFound):
		return KindNoVariablesFound, true
	case errors.Is(err, ErrMissingValues):
		return KindMissingVariableValues, true
	case errors.Is(err, ErrInconsistentCounts):
		return KindInconsistentValueCounts, true
	default:
		return 0, false
	}
}

// Recoverable reports whether generation may continue despite err.
func Recoverable(err error) bool {
	var ice *InconsistentCountsError
	return errors.As(err, &ice) && ice.Plan != nil
}
