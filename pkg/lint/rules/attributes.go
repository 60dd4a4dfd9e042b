package rules

import (
	"slices"
	"strings"

	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/syntax"
)

// UnquotedDynamicAttributeRule reports attribute values that hold code but
// are not wrapped in quotes, e.g. <a href=@url>.
//
// Options:
//
//	ignore_attributes: attribute names to skip, matched case-insensitively
type UnquotedDynamicAttributeRule struct {
	lint.BaseRule
}

// NewUnquotedDynamicAttributeRule creates a new unquoted-dynamic-attribute rule.
func NewUnquotedDynamicAttributeRule() *UnquotedDynamicAttributeRule {
	return &UnquotedDynamicAttributeRule{
		BaseRule: lint.NewBaseRule(
			"RZL003",
			"unquoted-dynamic-attribute",
			"Attribute values containing code should be quoted",
			[]string{"markup", "attributes"},
		),
	}
}

// Apply inspects every conditional attribute block.
func (r *UnquotedDynamicAttributeRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	ignored := ctx.OptionStringSlice("ignore_attributes", nil)

	var diags []lint.Diagnostic
	for _, block := range ctx.Blocks(syntax.BlockMarkup) {
		gen := block.Generator
		if gen.Kind != syntax.GenAttribute || gen.Suffix.Value != "" {
			continue
		}
		if slices.ContainsFunc(ignored, func(name string) bool { return strings.EqualFold(name, gen.Name) }) {
			continue
		}
		if !strings.HasSuffix(gen.Prefix.Value, "=") || !containsCode(block) {
			continue
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), ctx.File, block,
			"Value of attribute \""+gen.Name+"\" contains code but is not quoted").
			WithSuggestion(`Wrap the value in double quotes`).
			Build())
	}
	return diags, nil
}

func containsCode(block *syntax.Block) bool {
	found := false
	syntax.Walk(block, func(n syntax.Node) bool {
		if found {
			return false
		}
		if b, ok := n.(*syntax.Block); ok {
			switch b.Kind {
			case syntax.BlockExpression, syntax.BlockStatement:
				found = true
				return false
			}
		}
		return true
	})
	return found
}
