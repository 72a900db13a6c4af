// Package core defines the shared language of tplgen.
//
// This package contains:
//   - Domain entities (Variable, ParsedVariable)
//   - Generation policies (FallbackPolicy)
//   - Notification severities (Severity)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
