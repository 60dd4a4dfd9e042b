package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/lint"
)

const (
	testRuleID1 = "RZL901"
	testRuleID2 = "RZL902"
)

type testRule struct {
	lint.BaseRule
}

func newTestRule(id string) *testRule {
	return &testRule{BaseRule: lint.NewBaseRule(id, id+"-name", "", nil)}
}

func newRegistry(rules ...lint.Rule) *lint.Registry {
	registry := lint.NewRegistry()
	for _, rule := range rules {
		registry.Register(rule)
	}
	return registry
}

func TestResolveRulesDefaults(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lint.ResolveRules(lint.NewRegistry(), config.NewConfig()))

	resolved := lint.ResolveRules(newRegistry(newTestRule(testRuleID1), newTestRule(testRuleID2)), config.NewConfig())
	require.Len(t, resolved, 2)
	assert.Equal(t, testRuleID1, resolved[0].Rule.ID())
	assert.Equal(t, config.SeverityWarning, resolved[0].Severity)
}

func TestResolveRulesDisabledByDefault(t *testing.T) {
	t.Parallel()

	rule := &testRule{BaseRule: lint.NewBaseRule(testRuleID1, "quiet", "", nil).DisabledByDefault()}
	registry := newRegistry(rule)

	assert.Empty(t, lint.ResolveRules(registry, config.NewConfig()))

	cfg := config.NewConfig()
	cfg.EnableRules = []string{testRuleID1}
	assert.Len(t, lint.ResolveRules(registry, cfg), 1)
}

func TestResolveRulesSeverityDefault(t *testing.T) {
	t.Parallel()

	pinned := &testRule{BaseRule: lint.NewBaseRule(testRuleID2, "pinned", "", nil).WithSeverity(config.SeverityInfo)}
	cfg := config.NewConfig()
	cfg.SeverityDefault = "error"

	resolved := lint.ResolveRules(newRegistry(newTestRule(testRuleID1), pinned), cfg)
	require.Len(t, resolved, 2)
	assert.Equal(t, config.SeverityError, resolved[0].Severity)
	assert.Equal(t, config.SeverityInfo, resolved[1].Severity)

	override := "warning"
	cfg.Rules[testRuleID1] = config.RuleConfig{Severity: &override}
	resolved = lint.ResolveRules(newRegistry(newTestRule(testRuleID1)), cfg)
	require.Len(t, resolved, 1)
	assert.Equal(t, config.SeverityWarning, resolved[0].Severity)
}

func TestResolveRulesConfig(t *testing.T) {
	t.Parallel()

	disabled := false
	severity := "error"

	tests := []struct {
		name      string
		configure func(cfg *config.Config)
		wantIDs   []string
		wantSev   config.Severity
	}{
		{
			name: "disable by ID",
			configure: func(cfg *config.Config) {
				cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: &disabled}
			},
			wantIDs: []string{testRuleID2},
			wantSev: config.SeverityWarning,
		},
		{
			name: "disable by name",
			configure: func(cfg *config.Config) {
				cfg.Rules[testRuleID1+"-name"] = config.RuleConfig{Enabled: &disabled}
			},
			wantIDs: []string{testRuleID2},
			wantSev: config.SeverityWarning,
		},
		{
			name: "severity override",
			configure: func(cfg *config.Config) {
				cfg.Rules[testRuleID1] = config.RuleConfig{Severity: &severity}
				cfg.Rules[testRuleID2] = config.RuleConfig{Severity: &severity}
			},
			wantIDs: []string{testRuleID1, testRuleID2},
			wantSev: config.SeverityError,
		},
		{
			name: "CLI disable wins over config",
			configure: func(cfg *config.Config) {
				enabled := true
				cfg.Rules[testRuleID2] = config.RuleConfig{Enabled: &enabled}
				cfg.DisableRules = []string{testRuleID2}
			},
			wantIDs: []string{testRuleID1},
			wantSev: config.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.configure(cfg)

			resolved := lint.ResolveRules(newRegistry(newTestRule(testRuleID1), newTestRule(testRuleID2)), cfg)
			ids := make([]string, 0, len(resolved))
			for _, rr := range resolved {
				ids = append(ids, rr.Rule.ID())
				assert.Equal(t, tt.wantSev, rr.Severity)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestResolveDiagnosticSeverity(t *testing.T) {
	t.Parallel()

	sev, enabled := lint.ResolveDiagnosticSeverity(nil, diag.ReservedWord)
	assert.True(t, enabled)
	assert.Equal(t, config.SeverityError, sev)

	cfg := config.NewConfig()
	cfg.Diagnostics[diag.ReservedWord.Name()] = config.DiagnosticOff
	_, enabled = lint.ResolveDiagnosticSeverity(cfg, diag.ReservedWord)
	assert.False(t, enabled)
}
