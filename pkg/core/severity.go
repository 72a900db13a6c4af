package core

// =============================================================================
// Severity
// =============================================================================

// Severity indicates how a user-facing notification should be presented.
type Severity int

// Severity levels for notifications.
const (
	// SeverityError indicates generation was halted and input must be corrected.
	SeverityError Severity = iota
	// SeverityWarning indicates a recoverable problem the user may override.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeveritySuccess confirms a completed action.
	SeveritySuccess
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
