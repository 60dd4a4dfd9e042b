package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/internal/cli"
	"github.com/yaklabco/razorlint/internal/configloader"
	"github.com/yaklabco/razorlint/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "razorlint", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"check", "tokens", "tree", "rules", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}

	lintAlias, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)
	assert.Equal(t, "check", lintAlias.Name())
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	for _, name := range []string{
		"format", "language-version", "design-time", "jobs", "ignore", "include",
		"enable", "disable", "detect", "follow-symlinks", "strict", "no-context",
		"compact", "rule-format", "summary-order",
	} {
		assert.NotNil(t, checkCmd.Flags().Lookup(name), "flag %q", name)
	}

	ruleFormat := checkCmd.Flags().Lookup("rule-format")
	assert.Equal(t, "name", ruleFormat.DefValue)
	assert.Contains(t, checkCmd.Flags().Lookup("format").Usage, "sarif")

	require.NoError(t, checkCmd.Args(checkCmd, []string{"a.cshtml", "Views/"}))
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %q", name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "razorlint")
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestVersionCommandShort(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"check", "--no-such-flag"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"issues", cli.ErrIssuesFound, cli.ExitIssues},
		{"usage", fmt.Errorf("bad flag: %w", cli.ErrUsage), cli.ExitUsage},
		{"invalid config", fmt.Errorf("%w: jobs", configloader.ErrInvalidConfig), cli.ExitUsage},
		{"other", errors.New("disk on fire"), cli.ExitInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	withSeverity := func(counts map[string]int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{DiagnosticsBySeverity: counts}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil", nil, false, cli.ExitSuccess},
		{"clean", withSeverity(map[string]int{}), false, cli.ExitSuccess},
		{"warnings", withSeverity(map[string]int{"warning": 2}), false, cli.ExitSuccess},
		{"warnings strict", withSeverity(map[string]int{"warning": 2}), true, cli.ExitIssues},
		{"errors", withSeverity(map[string]int{"error": 1}), false, cli.ExitIssues},
		{
			"missing path wins",
			&runner.Result{
				Stats:  runner.Stats{DiagnosticsBySeverity: map[string]int{"error": 1}},
				Errors: []error{errors.New("stat Views: no such file")},
			},
			false, cli.ExitUsage,
		},
		{
			"unreadable file",
			&runner.Result{Stats: runner.Stats{FilesErrored: 1}},
			false, cli.ExitInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}
