// Package lint runs tree rules over parsed templates and merges their
// findings with the parser's own diagnostics.
package lint

import "github.com/yaklabco/razorlint/pkg/config"

// Origin distinguishes parser diagnostics from tree rule diagnostics.
type Origin string

const (
	OriginParser Origin = "parser"
	OriginRule   Origin = "rule"
)

// Diagnostic is one finding in a template, from either the parser or a
// tree rule. Offsets and lengths count runes; lines and columns are
// 1-based with an inclusive EndColumn.
type Diagnostic struct {
	// RuleID is a rule ID such as "RZL001", or the diagnostic code such as
	// "RZ1006" when Origin is OriginParser.
	RuleID   string
	RuleName string
	Origin   Origin
	Message  string
	Severity config.Severity
	FilePath string

	Offset      int
	Length      int
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	Suggestion string
}

// Position returns the line/column range of d.
func (d *Diagnostic) Position() Position {
	return Position{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule inspects a parsed template tree. Apply returns one diagnostic per
// finding and an error only when the rule itself failed; it should stop
// early once the context in RuleContext is cancelled.
type Rule interface {
	ID() string
	Name() string
	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Tags() []string
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
