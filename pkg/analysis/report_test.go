package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/razorlint/pkg/config"
)

func TestTotalsPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totals     Totals
		wantIssues bool
		wantErrors bool
	}{
		{"clean", Totals{Files: 3}, false, false},
		{"warnings only", Totals{Counts: Counts{Issues: 2, Warnings: 2}}, true, false},
		{"parser error", Totals{Counts: Counts{Issues: 1, Errors: 1}, ParserIssues: 1}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantIssues, tt.totals.HasIssues())
			assert.Equal(t, tt.wantErrors, tt.totals.HasErrors())
		})
	}
}

func TestDefaultOptionsBuildEveryView(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	assert.True(t, opts.IncludeDiagnostics && opts.IncludeByFile && opts.IncludeByRule)
	assert.Equal(t, SortByCount, opts.SortBy)
	assert.True(t, opts.SortDesc)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
	assert.Empty(t, opts.WorkingDir)
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	for _, field := range []SortField{SortByCount, SortByAlpha, SortBySeverity} {
		assert.True(t, field.IsValid(), field)
	}
	assert.False(t, SortField("length").IsValid())
	assert.False(t, SortField("").IsValid())
}

func TestRelativePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/repo/Views/Index.cshtml", RelativePath("/repo/Views/Index.cshtml", ""))
	assert.Equal(t, "Views/Index.cshtml", RelativePath("/repo/Views/Index.cshtml", "/repo"))
	assert.Equal(t, "../other/_Layout.cshtml", RelativePath("/other/_Layout.cshtml", "/repo"))
}
