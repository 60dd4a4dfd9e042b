package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/lint/rules"
	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/parser/razor"
	"github.com/yaklabco/razorlint/pkg/runner"
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	engine := lint.NewEngine(razor.New(parser.DefaultOptions()), registry)
	return runner.New(lint.NewPipeline(engine))
}

var project = map[string]string{
	"Views/clean.cshtml":  "<p>@Model.Name</p>\n",
	"Views/empty.cshtml":  "@{ }\n",
	"Views/broken.cshtml": "@{\n",
}

func diagnostics(result *runner.Result) []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, f := range result.Files {
		if f.Result != nil && f.Result.FileResult != nil {
			out = append(out, f.Result.Diagnostics...)
		}
	}
	return out
}

func TestRunner_Run_EmptyDirectory(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: workDir,
		Config:     config.NewConfig(),
		Fs:         memFs(t, nil),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
	assert.NoError(t, result.Err())
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	for _, jobs := range []int{1, 2, 8} {
		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir: workDir,
			Config:     config.NewConfig(),
			Fs:         memFs(t, project),
			Jobs:       jobs,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, result.Stats.FilesDiscovered)
		assert.Equal(t, 3, result.Stats.FilesProcessed)
		assert.Equal(t, 0, result.Stats.FilesErrored)
		assert.Equal(t, 2, result.Stats.FilesWithIssues)
		assert.Equal(t, 1, result.Stats.DiagnosticsBySeverity["warning"])
		assert.Positive(t, result.Stats.DiagnosticsBySeverity["error"])
		assert.Equal(t, 1, result.Stats.DiagnosticsByOrigin[lint.OriginRule])
		assert.Positive(t, result.Stats.DiagnosticsByOrigin[lint.OriginParser])
		assert.True(t, result.HasFailures())
		assert.True(t, result.HasIssues())
		assert.False(t, result.HasErrors())

		// Outcomes are sorted by path regardless of completion order.
		require.Len(t, result.Files, 3)
		assert.Equal(t, abs("Views/broken.cshtml", "Views/clean.cshtml", "Views/empty.cshtml"),
			[]string{result.Files[0].Path, result.Files[1].Path, result.Files[2].Path})
		assert.Len(t, diagnostics(result), result.Stats.DiagnosticsTotal)
	}
}

func TestRunner_Run_ConfigDisablesRule(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DisableRules = []string{"empty-code-block"}
	cfg.Diagnostics["RZ1006"] = config.DiagnosticOff

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: workDir,
		Config:     cfg,
		Fs:         memFs(t, project),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stats.DiagnosticsByOrigin[lint.OriginRule])
	for _, d := range diagnostics(result) {
		assert.NotEqual(t, "RZ1006", d.RuleID)
	}
}

func TestRunner_Run_MissingPath(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{
		Paths:      []string{"Views", "nope"},
		WorkingDir: workDir,
		Config:     config.NewConfig(),
		Fs:         memFs(t, project),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesProcessed)
	require.Len(t, result.Errors, 1)
	assert.True(t, result.HasErrors())
	assert.ErrorContains(t, result.Err(), "nope")
}

func TestRunner_Run_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir:   workDir,
		ExcludeGlobs: []string{"[bad"},
		Fs:           memFs(t, project),
	})
	require.ErrorIs(t, err, runner.ErrInvalidGlob)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{
		WorkingDir: workDir,
		Config:     config.NewConfig(),
		Fs:         memFs(t, project),
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasErrors())
	assert.NoError(t, result.Err())
}
