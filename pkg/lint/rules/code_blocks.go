package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// EmptyCodeBlockRule reports @{ } blocks whose body is only whitespace.
type EmptyCodeBlockRule struct {
	lint.BaseRule
}

// NewEmptyCodeBlockRule creates a new empty-code-block rule.
func NewEmptyCodeBlockRule() *EmptyCodeBlockRule {
	return &EmptyCodeBlockRule{
		BaseRule: lint.NewBaseRule(
			"RZL001",
			"empty-code-block",
			"Code blocks should not be empty",
			[]string{"code", "blocks"},
		),
	}
}

// Apply checks every statement block.
func (r *EmptyCodeBlockRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, block := range ctx.Blocks(syntax.BlockStatement) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if !isEmptyCodeBlock(block) {
			continue
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, block, "Empty code block").
			WithSuggestion("Remove the block or add code to it").
			Build())
	}
	return diags, nil
}

// isEmptyCodeBlock reports whether block is a closed "@{ }" holding nothing
// but whitespace. Nested blocks (markup, comments, expressions) count as
// content.
func isEmptyCodeBlock(block *syntax.Block) bool {
	var sb strings.Builder
	for _, child := range block.Children() {
		span, ok := child.(*syntax.Span)
		if !ok {
			return false
		}
		sb.WriteString(strings.TrimSpace(span.Content()))
	}
	return sb.String() == "@{}"
}
