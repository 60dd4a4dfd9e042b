package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/internal/cli"
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/fsutil"
)

// runInit runs init with a non-terminal stdin so overwrite prompts decline.
func runInit(t *testing.T, args ...string) error {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"init"}, args...))
	return cmd.Execute()
}

func TestInit_FullTemplateLimitedToRules(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), ".razorlint.yml")
	require.NoError(t, runInit(t, "--full", "--rules", "RZL002", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "  RZL002:\n    enabled: true\n    severity: error\n")
	assert.NotContains(t, string(data), "  RZL001:\n")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Contains(t, cfg.Rules, "RZL002")
}

func TestInit_ExistingFileNeedsForce(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), ".razorlint.yml")
	require.NoError(t, os.WriteFile(out, []byte("design_time: true\n"), 0o644))

	err := runInit(t, "-o", out)
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	require.NoError(t, runInit(t, "--force", "-o", out))
	backup, err := os.ReadFile(fsutil.BackupPath(out))
	require.NoError(t, err)
	assert.Equal(t, "design_time: true\n", string(backup))
}

func TestInit_NoBackup(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), ".razorlint.yml")
	require.NoError(t, os.WriteFile(out, []byte("design_time: true\n"), 0o644))

	require.NoError(t, runInit(t, "--force", "--no-backup", "-o", out))
	assert.NoFileExists(t, fsutil.BackupPath(out))
}

func TestInit_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	err := runInit(t, "--format", "toml", "-o", filepath.Join(t.TempDir(), "x"))
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
