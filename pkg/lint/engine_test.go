package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/source"
)

// templateParser implements lint.Parser with the real template parser.
type templateParser struct {
	err error
}

func (p *templateParser) Parse(_ context.Context, path string, content []byte) (*lint.File, error) {
	if p.err != nil {
		return nil, p.err
	}
	doc := source.NewDocument(path, string(content))
	res := parser.Parse(doc, parser.DefaultOptions())
	return &lint.File{
		Path:        path,
		Content:     content,
		Document:    doc,
		Root:        res.Root,
		Diagnostics: res.Diagnostics,
	}, nil
}

// diagnosticRule is a test rule that returns fixed diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
}

func (r *diagnosticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	return r.diags, r.err
}

func newDiagnosticRule(id string, diags ...lint.Diagnostic) *diagnosticRule {
	return &diagnosticRule{
		BaseRule: lint.NewBaseRule(id, id+"-name", "test rule", nil),
		diags:    diags,
	}
}

func TestEngineLintFileClean(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(&templateParser{}, lint.NewRegistry())
	result, err := engine.LintFile(context.Background(), "a.cshtml", []byte("<p>@x</p>"), config.NewConfig())
	require.NoError(t, err)

	require.NotNil(t, result.File)
	assert.Equal(t, "a.cshtml", result.File.Path)
	assert.False(t, result.HasIssues())
}

func TestEngineLintFileParseError(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("parse failed")
	engine := lint.NewEngine(&templateParser{err: parseErr}, lint.NewRegistry())

	_, err := engine.LintFile(context.Background(), "a.cshtml", nil, config.NewConfig())
	require.ErrorIs(t, err, parseErr)
}

func TestEngineSurfacesParserDiagnostics(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(&templateParser{}, lint.NewRegistry())
	result, err := engine.LintFile(context.Background(), "a.cshtml", []byte("@{"), config.NewConfig())
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)

	got := result.Diagnostics[0]
	assert.Equal(t, string(diag.ExpectedEndOfBlockBeforeEOF), got.RuleID)
	assert.Equal(t, diag.ExpectedEndOfBlockBeforeEOF.Name(), got.RuleName)
	assert.Equal(t, lint.OriginParser, got.Origin)
	assert.Equal(t, config.SeverityError, got.Severity)
	assert.Equal(t, "a.cshtml", got.FilePath)
	assert.Equal(t, 1, got.StartLine)
	assert.Equal(t, 2, got.StartColumn)
	assert.True(t, result.HasIssues())
}

func TestEngineDiagnosticSeverityOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		want    config.Severity
		wantLen int
	}{
		{"by code", string(diag.ExpectedEndOfBlockBeforeEOF), "warning", config.SeverityWarning, 1},
		{"by name", diag.ExpectedEndOfBlockBeforeEOF.Name(), "info", config.SeverityInfo, 1},
		{"off", string(diag.ExpectedEndOfBlockBeforeEOF), config.DiagnosticOff, "", 0},
		{"invalid keeps error", string(diag.ExpectedEndOfBlockBeforeEOF), "loud", config.SeverityError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Diagnostics[tt.key] = tt.value

			engine := lint.NewEngine(&templateParser{}, lint.NewRegistry())
			result, err := engine.LintFile(context.Background(), "a.cshtml", []byte("@{"), cfg)
			require.NoError(t, err)
			require.Len(t, result.Diagnostics, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.want, result.Diagnostics[0].Severity)
			}
		})
	}
}

func TestEngineRunsRules(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newDiagnosticRule("RZL900", lint.Diagnostic{Message: "found"}))

	engine := lint.NewEngine(&templateParser{}, registry)
	result, err := engine.LintFile(context.Background(), "a.cshtml", []byte("x"), config.NewConfig())
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)

	got := result.Diagnostics[0]
	assert.Equal(t, "RZL900", got.RuleID)
	assert.Equal(t, "RZL900-name", got.RuleName)
	assert.Equal(t, "a.cshtml", got.FilePath)
	assert.Equal(t, lint.OriginRule, got.Origin)
	assert.Equal(t, config.SeverityWarning, got.Severity)
}

func TestEngineRecordsRuleErrors(t *testing.T) {
	t.Parallel()

	rule := newDiagnosticRule("RZL901")
	rule.err = errors.New("boom")
	registry := lint.NewRegistry()
	registry.Register(rule)

	engine := lint.NewEngine(&templateParser{}, registry)
	result, err := engine.LintFile(context.Background(), "a.cshtml", []byte("x"), config.NewConfig())
	require.NoError(t, err)
	require.Contains(t, result.RuleErrors, "RZL901")
	assert.Empty(t, result.Diagnostics)
}

func TestEngineCancelled(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newDiagnosticRule("RZL902"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := lint.NewEngine(&templateParser{}, registry)
	_, err := engine.LintFile(ctx, "a.cshtml", []byte("x"), config.NewConfig())
	require.ErrorIs(t, err, context.Canceled)
}
