package analysis

import "github.com/yaklabco/razorlint/pkg/config"

// SortField selects the ordering of the ByFile and ByRule views.
type SortField string

const (
	SortByCount    SortField = "count"    // issue count, SortDesc applies
	SortByAlpha    SortField = "alpha"    // rule ID or path, ascending
	SortBySeverity SortField = "severity" // most errors first, then warnings
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortBySeverity
}

// Options selects which views Analyze builds and how they are ordered.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool

	SortBy   SortField
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir makes report paths relative. Empty keeps them as discovered.
	WorkingDir string
}

// DefaultOptions builds every view, busiest rule and file first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
