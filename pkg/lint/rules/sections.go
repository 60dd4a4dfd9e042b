package rules

import (
	"fmt"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// DuplicateSectionRule reports a @section whose name was already defined.
type DuplicateSectionRule struct {
	lint.BaseRule
}

// NewDuplicateSectionRule creates a new duplicate-section rule.
func NewDuplicateSectionRule() *DuplicateSectionRule {
	return &DuplicateSectionRule{
		BaseRule: lint.NewBaseRule(
			"RZL002",
			"duplicate-section",
			"Section names must be unique within a template",
			[]string{"directives", "sections"},
		).WithSeverity(config.SeverityError),
	}
}

// Apply compares section names in document order.
func (r *DuplicateSectionRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	firstLine := make(map[string]int)
	var diags []lint.Diagnostic

	for _, block := range ctx.Blocks(syntax.BlockDirective) {
		if block.Generator.Kind != syntax.GenSection {
			continue
		}
		name := block.Generator.Name
		node := sectionNameNode(block)
		pos := ctx.File.NodePosition(node)

		line, seen := firstLine[name]
		if !seen {
			firstLine[name] = pos.StartLine
			continue
		}

		msg := fmt.Sprintf("Section %q is already defined on line %d", name, line)
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, node, msg).Build())
	}
	return diags, nil
}

// sectionNameNode returns the span holding the section name, or the block
// itself when the name span cannot be found.
func sectionNameNode(block *syntax.Block) syntax.Node {
	for _, span := range syntax.Flatten(block) {
		if span.Generator.Kind == syntax.GenDirectiveToken {
			return span
		}
	}
	return block
}
