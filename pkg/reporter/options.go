package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
)

const bufWriterSize = 64 * 1024

// Options configures a Reporter.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the offending template line with a caret under the span.
	ShowContext bool
	ShowSummary bool
	GroupByFile bool

	// Compact disables indentation in JSON and SARIF output.
	Compact bool

	RuleFormat   config.RuleFormat
	SummaryOrder config.SummaryOrder

	// WorkingDir makes reported paths relative to it.
	WorkingDir string

	// Registry supplies rule metadata for SARIF. Optional.
	Registry    *lint.Registry
	ToolVersion string
}

// DefaultOptions returns text output to stdout with source context and a summary.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: config.SummaryOrderRules,
	}
}
