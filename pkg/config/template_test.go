package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/razorlint/pkg/config"
)

func TestGenerateTemplateMinimalIsValidConfig(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "# razorlint configuration")

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "latest", cfg.LanguageVersion)
}

func TestGenerateTemplateJSON(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "latest", decoded["language_version"])
}

func TestGenerateTemplateFullParses(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "warning", decoded["severity_default"])
}
