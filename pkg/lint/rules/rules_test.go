package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/lint/rules"
)

func TestEmptyCodeBlockRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantDiags int
	}{
		{"empty braces", "@{}", 1},
		{"whitespace only", "<p>\n@{  \n  }\n</p>", 1},
		{"statement", "@{ var x = 1; }", 0},
		{"markup inside", "@{ <p></p> }", 0},
		{"razor comment inside", "@{ @* note *@ }", 0},
		{"unclosed", "@{ ", 0},
		{"if block", "@if (a) { }", 0},
		{"expression", "@(x)", 0},
		{"two empty blocks", "@{ }\n@{ }", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := applyRule(t, rules.NewEmptyCodeBlockRule(), tt.input)
			assert.Len(t, diags, tt.wantDiags)
			for _, d := range diags {
				assert.Equal(t, "RZL001", d.RuleID)
			}
		})
	}
}

func TestDuplicateSectionRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantDiags int
	}{
		{"single section", "@section Scripts { <script></script> }", 0},
		{"distinct sections", "@section A { }\n@section B { }", 0},
		{"duplicate", "@section A { }\n@section A { <p></p> }", 1},
		{"triplicate", "@section A { }\n@section A { }\n@section A { }", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := applyRule(t, rules.NewDuplicateSectionRule(), tt.input)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestDuplicateSectionRulePointsAtName(t *testing.T) {
	t.Parallel()

	diags := applyRule(t, rules.NewDuplicateSectionRule(), "@section A { }\n@section A { }")
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].StartLine)
	assert.Equal(t, 10, diags[0].StartColumn)
	assert.Equal(t, "Section \"A\" is already defined on line 1", diags[0].Message)
}

func TestUnquotedDynamicAttributeRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantDiags int
	}{
		{"double quoted", `<a href="@url">x</a>`, 0},
		{"single quoted", `<a href='@url'>x</a>`, 0},
		{"unquoted literal", `<a href=foo>x</a>`, 0},
		{"unquoted code", `<a href=@url>x</a>`, 1},
		{"two unquoted", `<img src=@a alt=@b />`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := applyRule(t, rules.NewUnquotedDynamicAttributeRule(), tt.input)
			assert.Len(t, diags, tt.wantDiags)
		})
	}
}

func TestUnquotedDynamicAttributeRuleIgnoresConfiguredNames(t *testing.T) {
	t.Parallel()

	ruleCfg := &config.RuleConfig{Options: map[string]any{"ignore_attributes": []any{"ALT"}}}
	diags := applyRuleWith(t, rules.NewUnquotedDynamicAttributeRule(), ruleCfg, `<img src=@a alt=@b />`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, `"src"`)
}

func TestInlineMarkupLineRule(t *testing.T) {
	t.Parallel()

	diags := applyRule(t, rules.NewInlineMarkupLineRule(), "@{\n    @:Hello @name\n}")
	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].StartLine)
	assert.Equal(t, 5, diags[0].StartColumn)
	assert.Equal(t, 2, diags[0].Length)

	assert.Empty(t, applyRule(t, rules.NewInlineMarkupLineRule(), "@{ <text>Hello</text> }"))
}

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	assert.Equal(t, []string{"RZL001", "RZL002", "RZL003", "RZL004"}, registry.IDs())

	tests := []struct {
		id       string
		name     string
		severity string
		enabled  bool
	}{
		{"RZL001", "empty-code-block", "warning", true},
		{"RZL002", "duplicate-section", "error", true},
		{"RZL003", "unquoted-dynamic-attribute", "warning", true},
		{"RZL004", "inline-markup-line", "info", false},
	}
	for _, tt := range tests {
		rule, ok := registry.GetByID(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.name, rule.Name())
		assert.Equal(t, tt.severity, string(rule.DefaultSeverity()))
		assert.Equal(t, tt.enabled, rule.DefaultEnabled())
	}
}

func TestDefaultRegistryHasBuiltins(t *testing.T) {
	t.Parallel()

	_, ok := lint.DefaultRegistry.GetByName("duplicate-section")
	assert.True(t, ok)
}
