package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/razorlint/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		t.Parallel()
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Rules map", func(t *testing.T) {
		t.Parallel()
		enabled := true
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"RZL001": {
					Enabled:  &enabled,
					Severity: &severity,
					Options:  map[string]any{"allow_comments": true},
				},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		require.Contains(t, clone.Rules, "RZL001")
		assert.True(t, *clone.Rules["RZL001"].Enabled)
		assert.Equal(t, "error", *clone.Rules["RZL001"].Severity)

		newSeverity := "warning"
		clone.Rules["RZL001"] = config.RuleConfig{Severity: &newSeverity}
		assert.Equal(t, "error", *original.Rules["RZL001"].Severity)
	})

	t.Run("deep copies directives", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			Directives: []config.DirectiveConfig{{
				Name:   "model",
				Kind:   "single-line",
				Tokens: []config.DirectiveTokenConfig{{Kind: "type"}},
			}},
		}

		clone := original.Clone()
		require.Len(t, clone.Directives, 1)
		assert.Equal(t, original.Directives, clone.Directives)

		clone.Directives[0].Tokens[0].Kind = "member"
		assert.Equal(t, "type", original.Directives[0].Tokens[0].Kind)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		t.Parallel()
		original := &config.Config{
			DesignTime:      true,
			LanguageVersion: "1.1",
			Extensions:      []string{".cshtml"},
			SeverityDefault: "warning",
			Diagnostics:     map[string]string{"RZ1006": "warning"},
			Ignore:          []string{"bin/**"},
			Format:          config.FormatJSON,
			RuleFormat:      config.RuleFormatCombined,
			Jobs:            4,
			EnableRules:     []string{"RZL004"},
			DisableRules:    []string{"RZL001"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.DesignTime, clone.DesignTime)
		assert.Equal(t, original.LanguageVersion, clone.LanguageVersion)
		assert.Equal(t, original.Extensions, clone.Extensions)
		assert.Equal(t, original.SeverityDefault, clone.SeverityDefault)
		assert.Equal(t, original.Diagnostics, clone.Diagnostics)
		assert.Equal(t, original.Ignore, clone.Ignore)
		assert.Equal(t, original.Format, clone.Format)
		assert.Equal(t, original.RuleFormat, clone.RuleFormat)
		assert.Equal(t, original.Jobs, clone.Jobs)
		assert.Equal(t, original.EnableRules, clone.EnableRules)
		assert.Equal(t, original.DisableRules, clone.DisableRules)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "bin/**", original.Ignore[0])
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{
			LanguageVersion: "2.0",
			SeverityDefault: "warning",
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), `language_version: "2.0"`)
		assert.Contains(t, string(data), "severity_default: warning")
		assert.NotContains(t, string(data), "jobs")
	})

	t.Run("header is prepended", func(t *testing.T) {
		t.Parallel()
		data, err := config.NewConfig().ToYAMLWithHeader("# razorlint")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# razorlint\n\n")
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()
		data := []byte(`
design_time: true
language_version: "1.0"
severity_default: error
directives:
  - name: model
    kind: single-line
    tokens:
      - kind: type
diagnostics:
  RZ1006: warning
rules:
  RZL001:
    enabled: true
`)
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.True(t, cfg.DesignTime)
		assert.Equal(t, "1.0", cfg.LanguageVersion)
		assert.Equal(t, "error", cfg.SeverityDefault)
		require.Len(t, cfg.Directives, 1)
		assert.Equal(t, "model", cfg.Directives[0].Name)
		assert.Equal(t, "warning", cfg.Diagnostics["RZ1006"])
		require.Contains(t, cfg.Rules, "RZL001")
		assert.True(t, *cfg.Rules["RZL001"].Enabled)
	})

	t.Run("initializes empty maps", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(`design_time: false`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
		assert.NotNil(t, cfg.Diagnostics)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("rules: [unclosed"))
		require.Error(t, err)
	})
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.SeverityError.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
	assert.Greater(t, config.SeverityError.Rank(), config.SeverityWarning.Rank())
	assert.Greater(t, config.SeverityWarning.Rank(), config.SeverityInfo.Rank())
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, "latest", cfg.LanguageVersion)
	assert.True(t, cfg.HasExtension(".cshtml"))
	assert.False(t, cfg.HasExtension(".md"))
}
