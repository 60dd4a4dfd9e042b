package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/parser/razor"
)

// applyRule parses input and runs rule against it.
func applyRule(t *testing.T, rule lint.Rule, input string) []lint.Diagnostic {
	t.Helper()
	return applyRuleWith(t, rule, nil, input)
}

func applyRuleWith(t *testing.T, rule lint.Rule, ruleCfg *config.RuleConfig, input string) []lint.Diagnostic {
	t.Helper()

	file, err := razor.New(parser.DefaultOptions()).Parse(context.Background(), "test.cshtml", []byte(input))
	require.NoError(t, err)

	ruleCtx := lint.NewRuleContext(context.Background(), file, config.NewConfig(), ruleCfg)
	diags, err := rule.Apply(ruleCtx)
	require.NoError(t, err)
	return diags
}
