package rules

import (
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/source"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// InlineMarkupLineRule reports uses of "@:" single-line markup.
type InlineMarkupLineRule struct {
	lint.BaseRule
}

// NewInlineMarkupLineRule creates a new inline-markup-line rule.
// It is disabled by default.
func NewInlineMarkupLineRule() *InlineMarkupLineRule {
	return &InlineMarkupLineRule{
		BaseRule: lint.NewBaseRule(
			"RZL004",
			"inline-markup-line",
			"Prefer <text> blocks over @: single-line markup",
			[]string{"markup", "style"},
		).WithSeverity(config.SeverityInfo).DisabledByDefault(),
	}
}

// Apply looks for a transition span directly followed by a ":" meta span.
func (r *InlineMarkupLineRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	spans := ctx.Spans()
	for i := 0; i+1 < len(spans); i++ {
		transition, colon := spans[i], spans[i+1]
		if transition.Kind != syntax.SpanTransition || colon.Kind != syntax.SpanMetaCode || colon.Content() != ":" {
			continue
		}
		span := source.NewSpan(transition.Start(), transition.Length()+colon.Length())
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File, span, "Single-line markup \"@:\"").
			WithSuggestion("Wrap the line in <text></text>").
			Build())
	}
	return diags, nil
}
