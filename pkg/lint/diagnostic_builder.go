package lint

import (
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a rule diagnostic covering node.
func NewDiagnostic(ruleID string, file *File, node syntax.Node, message string) *DiagnosticBuilder {
	span := source.Span{}
	if node != nil {
		span = source.NewSpan(node.Start(), node.Length())
	}
	return NewDiagnosticAt(ruleID, file, span, message)
}

// NewDiagnosticAt starts building a rule diagnostic at a specific span.
func NewDiagnosticAt(ruleID string, file *File, span source.Span, message string) *DiagnosticBuilder {
	d := Diagnostic{
		RuleID:  ruleID,
		Origin:  OriginRule,
		Message: message,
		Offset:  span.AbsoluteIndex,
		Length:  span.Length,
	}
	if file != nil {
		d.FilePath = file.Path
		pos := file.SpanPosition(span)
		d.StartLine, d.StartColumn = pos.StartLine, pos.StartColumn
		d.EndLine, d.EndColumn = pos.EndLine, pos.EndColumn
	}
	return &DiagnosticBuilder{diag: d}
}

// FromParserDiagnostic converts a parser diagnostic. The rule ID is the
// kind code and the rule name its kebab-case name.
func FromParserDiagnostic(file *File, pd diag.Diagnostic) *DiagnosticBuilder {
	b := NewDiagnosticAt(string(pd.Kind), file, pd.Span, pd.Message())
	b.diag.RuleName = pd.Kind.Name()
	b.diag.Origin = OriginParser
	return b
}

// WithRegistry fills in the rule name from the registry.
func (b *DiagnosticBuilder) WithRegistry(reg *Registry) *DiagnosticBuilder {
	if reg != nil {
		if rule, ok := reg.GetByID(b.diag.RuleID); ok {
			b.diag.RuleName = rule.Name()
		}
	}
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
