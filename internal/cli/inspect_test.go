package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/internal/cli"
)

func TestTokens_Markup(t *testing.T) {
	t.Parallel()

	path, _ := writeTemplate(t, "Index.cshtml", "<p>@name</p>")

	output, err := runCLI(t, "tokens", "--color", "never", path)
	require.NoError(t, err)

	assert.Contains(t, output, "OpenAngle")
	assert.Contains(t, output, "Transition")
	assert.Contains(t, output, `"@"`)
	assert.Contains(t, output, `"name"`)
	assert.Contains(t, output, "   1:1 ")
}

func TestTokens_CodeGrammarFromStdin(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(`var s = "abc`))
	cmd.SetArgs([]string{"tokens", "--grammar", "code", "--color", "never", "-"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"var"`)
	assert.Contains(t, out.String(), "RZ1000")
}

func TestTokens_Errors(t *testing.T) {
	t.Parallel()

	path, _ := writeTemplate(t, "Index.cshtml", "<p></p>")

	_, err := runCLI(t, "tokens", "--grammar", "sql", path)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = runCLI(t, "tokens", filepath.Join(t.TempDir(), "missing.cshtml"))
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	_, err = runCLI(t, "tokens")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err), "FILE is required")
}

func TestTree_Dump(t *testing.T) {
	t.Parallel()

	path, _ := writeTemplate(t, "Index.cshtml", "<p>@name</p>")

	output, err := runCLI(t, "tree", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Markup block")
	assert.Contains(t, output, "Expression block")
	assert.Contains(t, output, "Code span")
}

func TestTree_Flatten(t *testing.T) {
	t.Parallel()

	path, _ := writeTemplate(t, "Index.cshtml", "<p>@name</p>")

	output, err := runCLI(t, "tree", "--flatten", path)
	require.NoError(t, err)
	assert.Contains(t, output, " span - ")
	assert.NotContains(t, output, " block - ")
}

func TestTree_DiagnosticsAndCodeMode(t *testing.T) {
	t.Parallel()

	path, _ := writeTemplate(t, "snippet.cs", "{")

	output, err := runCLI(t, "tree", "--code", "--color", "never", path)
	require.NoError(t, err, "diagnostics do not fail inspection commands")
	assert.Contains(t, output, "Statement block")
	assert.Contains(t, output, "1:1 RZ1006 expected-end-of-block-before-eof")
}

func TestTree_InvalidLanguageVersion(t *testing.T) {
	t.Parallel()

	path, _ := writeTemplate(t, "Index.cshtml", "<p></p>")

	_, err := runCLI(t, "tree", "--language-version", "4.2", path)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}

func TestInit_WritesConfig(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".razorlint.yml")

	_, err := runCLI(t, "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "language_version")

	_, err = runCLI(t, "check", "--config", output, filepath.Join(t.TempDir()))
	require.NoError(t, err, "generated config validates")
}

func TestInit_RefusesOverwriteWithoutTerminal(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".razorlint.yml")
	require.NoError(t, os.WriteFile(output, []byte("design_time: true\n"), 0o644))

	_, err := runCLI(t, "init", "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "design_time: true\n", string(content))

	_, err = runCLI(t, "init", "--force", "--full", "--output", output)
	require.NoError(t, err)

	content, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.NotEqual(t, "design_time: true\n", string(content))

	backup, err := os.ReadFile(output + ".razorlint.bak")
	require.NoError(t, err)
	assert.Equal(t, "design_time: true\n", string(backup))
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := runCLI(t, "init", "--format", "toml", "--output", filepath.Join(t.TempDir(), "x"))
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
}
