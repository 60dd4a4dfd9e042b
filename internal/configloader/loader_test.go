package configloader

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/config"
	_ "github.com/yaklabco/razorlint/pkg/lint/rules" // Register rules
)

const (
	projectDir = "/home/dev/site"
	systemDir  = "/etc/razorlint"
	userDir    = "/home/dev/.config/razorlint"
)

// memFs returns a filesystem holding files plus a VCS root at projectDir.
func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(projectDir+"/.git", 0o755))
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func noEnv(string) (string, bool) { return "", false }

func loadOptions(fs afero.Fs) LoadOptions {
	return LoadOptions{
		WorkingDir: projectDir,
		Fs:         fs,
		Locations:  Locations{SystemDir: systemDir, UserDir: userDir, HomeDir: "/home/dev"},
		LookupEnv:  noEnv,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), loadOptions(memFs(t, nil)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, "latest", result.Config.LanguageVersion)
	assert.False(t, result.Config.DesignTime)
	assert.Equal(t, config.DefaultExtensions(), result.Config.Extensions)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		projectDir + "/.razorlint.yml": `
design_time: true
language_version: "1.1"
rules:
  RZL001:
    enabled: false
diagnostics:
  RZ1006: warning
`,
	})

	opts := loadOptions(fs)
	opts.WorkingDir = projectDir + "/Views/Shared"
	require.NoError(t, fs.MkdirAll(opts.WorkingDir, 0o755))

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.Config.DesignTime)
	assert.Equal(t, "1.1", result.Config.LanguageVersion)
	require.Contains(t, result.Config.Rules, "RZL001")
	assert.False(t, *result.Config.Rules["RZL001"].Enabled)
	assert.Equal(t, "warning", result.Config.Diagnostics["RZ1006"])
	assert.Equal(t, []string{projectDir + "/.razorlint.yml"}, result.LoadedFrom)
}

func TestLoad_ProjectSearchStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		"/home/dev/.razorlint.yml": "design_time: true\n",
	})

	result, err := Load(context.Background(), loadOptions(fs))
	require.NoError(t, err)
	assert.Empty(t, result.Paths.Project)
	assert.False(t, result.Config.DesignTime)
}

func TestLoad_LayerPrecedence(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		systemDir + "/config.yml": `
severity_default: info
extensions: [".cshtml"]
rules:
  RZL003:
    severity: error
`,
		userDir + "/config.yml": `
severity_default: error
rules:
  RZL003:
    enabled: false
`,
		projectDir + "/.razorlint.yml": `
language_version: "2.0"
`,
	})

	result, err := Load(context.Background(), loadOptions(fs))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, "2.0", cfg.LanguageVersion)
	assert.Equal(t, []string{".cshtml"}, cfg.Extensions)

	rule := cfg.Rules["RZL003"]
	require.NotNil(t, rule.Severity)
	require.NotNil(t, rule.Enabled)
	assert.Equal(t, "error", *rule.Severity)
	assert.False(t, *rule.Enabled)

	assert.Equal(t, []string{
		systemDir + "/config.yml",
		userDir + "/config.yml",
		projectDir + "/.razorlint.yml",
	}, result.LoadedFrom)
}

func TestLoad_ExplicitConfigReplacesProject(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		projectDir + "/.razorlint.yml": "design_time: true\n",
		"/tmp/ci.yml":                  "severity_default: error\n",
	})

	opts := loadOptions(fs)
	opts.ExplicitPath = "/tmp/ci.yml"

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Config.DesignTime)
	assert.Equal(t, "error", result.Config.SeverityDefault)
	assert.Equal(t, "/tmp/ci.yml", result.Paths.Explicit)
	assert.Equal(t, []string{"/tmp/ci.yml"}, result.LoadedFrom)
}

func TestLoad_EnvAndCLIOverrides(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		projectDir + "/.razorlint.yml": "severity_default: info\nlanguage_version: \"1.0\"\n",
	})

	env := map[string]string{
		"RAZORLINT_SEVERITY_DEFAULT": "warning",
		"RAZORLINT_JOBS":             "4",
		"RAZORLINT_IGNORE":           "bin/**, obj/**",
	}

	opts := loadOptions(fs)
	opts.LookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	opts.CLIConfig = &config.Config{SeverityDefault: "error", DisableRules: []string{"RZL001"}}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, "1.0", cfg.LanguageVersion)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, []string{"bin/**", "obj/**"}, cfg.Ignore)
	assert.Equal(t, []string{"RZL001"}, cfg.DisableRules)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		projectDir + "/.razorlint.yml": `
language_version: "9.9"
severity_default: fatal
`,
	})

	_, err := Load(context.Background(), loadOptions(fs))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "language_version")
	assert.Contains(t, err.Error(), "severity_default")
}

func TestLoad_ReportsEveryBrokenFile(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		userDir + "/config.yml":        "rules: [\n",
		projectDir + "/.razorlint.yml": "design_time: {\n",
	})

	_, err := Load(context.Background(), loadOptions(fs))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load user config")
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := loadOptions(memFs(t, nil))
	opts.ExplicitPath = "/nope.yml"

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config /nope.yml")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, loadOptions(memFs(t, nil)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		projectDir + "/.razorlint.yml": `
rules:
  empty-code-block:
    severity: error
  no-such-rule:
    enabled: false
`,
	})

	result, err := Load(context.Background(), loadOptions(fs))
	require.NoError(t, err)

	assert.Contains(t, result.Config.Rules, "RZL001")
	assert.NotContains(t, result.Config.Rules, "empty-code-block")
	assert.Contains(t, result.Config.Rules, "no-such-rule")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown rule "no-such-rule"`)
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	fs := memFs(t, map[string]string{
		projectDir + "/.razorlint.yml": `
rules:
  duplicate-section:
    severity: info
  RZL002:
    severity: warning
`,
	})

	result, err := Load(context.Background(), loadOptions(fs))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
	assert.Contains(t, result.Warnings[0], `using "RZL002"`)
	require.Contains(t, result.Config.Rules, "RZL002")
	require.NotNil(t, result.Config.Rules["RZL002"].Severity)
	assert.Equal(t, "warning", *result.Config.Rules["RZL002"].Severity)
}
