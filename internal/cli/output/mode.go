// Package output renders command results for terminals, scripts and agents.
//
// Output adapts to the environment: styled text on a TTY, markdown when piped,
// and JSON on request.
package output

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a configured output format to an OutputMode.
// Unknown or empty values map to ModeAuto.
func Mode(format string) OutputMode {
	switch OutputMode(format) {
	case ModeText, ModeMarkdown, ModeJSON:
		return OutputMode(format)
	default:
		return ModeAuto
	}
}
