package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/internal/ui/pretty"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
)

func emptyBlockDiagnostic() *lint.Diagnostic {
	return &lint.Diagnostic{
		RuleID:      "RZL001",
		RuleName:    "empty-code-block",
		Message:     "Empty code block",
		Severity:    config.SeverityWarning,
		FilePath:    "Views/Index.cshtml",
		StartLine:   1,
		StartColumn: 5,
		EndLine:     1,
		EndColumn:   8,
	}
}

func TestFormatDiagnosticHeadline(t *testing.T) {
	t.Parallel()

	got := pretty.NewStyles(false).FormatDiagnostic(emptyBlockDiagnostic(), pretty.DiagnosticView{})
	assert.Equal(t, "  Views/Index.cshtml:1:5  warning  Empty code block  (RZL001)\n", got)
}

func TestFormatDiagnosticRuleLabel(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for format, want := range map[config.RuleFormat]string{
		config.RuleFormatName:     "(empty-code-block)",
		config.RuleFormatID:       "(RZL001)",
		config.RuleFormatCombined: "(RZL001/empty-code-block)",
	} {
		got := styles.FormatDiagnostic(emptyBlockDiagnostic(), pretty.DiagnosticView{RuleFormat: format})
		assert.True(t, strings.HasSuffix(got, want+"\n"), "%s: %q", format, got)
	}
}

func TestFormatDiagnosticSourceLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("single line range", func(t *testing.T) {
		t.Parallel()
		got := styles.FormatDiagnostic(emptyBlockDiagnostic(), pretty.DiagnosticView{SourceLine: "<p>@{ }</p>"})
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "        <p>@{ }</p>", lines[1])
		assert.Equal(t, "            ^~~~", lines[2])
	})

	t.Run("range continuing past the line", func(t *testing.T) {
		t.Parallel()
		d := &lint.Diagnostic{RuleID: "RZ1006", Severity: config.SeverityError, StartLine: 1, StartColumn: 1, EndLine: 3, EndColumn: 1}
		got := styles.FormatDiagnostic(d, pretty.DiagnosticView{SourceLine: "@{"})
		assert.Contains(t, got, "\n        ^~\n")
	})
}

func TestFormatDiagnosticSuggestion(t *testing.T) {
	t.Parallel()

	d := emptyBlockDiagnostic()
	d.Suggestion = "Remove the block or add code to it"

	got := pretty.NewStyles(false).FormatDiagnostic(d, pretty.DiagnosticView{})
	assert.Contains(t, got, "\n    Suggestion: Remove the block or add code to it\n")
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, sev := range []config.Severity{config.SeverityError, config.SeverityWarning, config.SeverityInfo, "custom"} {
		assert.Equal(t, string(sev), styles.FormatSeverity(sev))
	}
}

func TestFormatSourceContextCaret(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name       string
		line       string
		start, end int
		want       string
	}{
		{"one column", "test line", 5, 5, "            ^"},
		{"range", "test line", 1, 4, "        ^~~~"},
		{"end before start", "test line", 3, 1, "          ^"},
		{"beyond line end", "ab", 5, 9, "          ^"},
		{"leading tab", "\t@x", 2, 3, "            ^~"},
		{"combining mark", "e\u0301 @x", 4, 5, "          ^~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lines := strings.Split(styles.FormatSourceContext(tt.line, tt.start, tt.end), "\n")
			require.GreaterOrEqual(t, len(lines), 2)
			assert.Equal(t, tt.want, lines[1])
		})
	}

	t.Run("no column", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "        test line\n", styles.FormatSourceContext("test line", 0, 0))
	})
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "Views/Index.cshtml (5 issues)", styles.FormatFileHeader("Views/Index.cshtml", 5))
	assert.Equal(t, "Views/Index.cshtml (1 issue)", styles.FormatFileHeader("Views/Index.cshtml", 1))
	assert.Equal(t, "Views/Index.cshtml", styles.FormatFileHeader("Views/Index.cshtml", 0))
}
