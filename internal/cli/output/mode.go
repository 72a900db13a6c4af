// Package output renders command results for terminals, pipes and tools.
//
// Output adapts to the environment:
//   - Terminal: styled text
//   - Piped/Scripted: Markdown
//   - JSON: machine-readable
//   - Table: rows in a box-drawn table
package output

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeTable    OutputMode = "table"
)

// Mode converts a configuration string to an OutputMode.
// Unknown values map to ModeAuto.
func Mode(s string) OutputMode {
	switch OutputMode(s) {
	case ModeText, ModeMarkdown, ModeJSON, ModeTable:
		return OutputMode(s)
	case "md":
		return ModeMarkdown
	default:
		return ModeAuto
	}
}
