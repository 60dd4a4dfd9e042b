package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation used for every document razorlint writes.
const yamlIndent = 2

// ToYAML encodes the file-backed fields of c. CLI-only fields are tagged
// yaml:"-" and never appear.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}

	out := strings.TrimRight(header, "\n") + "\n\n"
	return append([]byte(out), body...), nil
}

// FromYAML decodes a configuration layer. Keys absent from data keep their
// zero value; the rule and diagnostic maps are always non-nil.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = map[string]string{}
	}
	return &cfg, nil
}

// Clone returns a copy of c sharing no slices or maps with it. Values
// nested inside rule options are still shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Extensions = slices.Clone(c.Extensions)
	out.Ignore = slices.Clone(c.Ignore)
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)
	out.Diagnostics = maps.Clone(c.Diagnostics)

	if c.Directives != nil {
		out.Directives = make([]DirectiveConfig, len(c.Directives))
		for i, d := range c.Directives {
			d.Tokens = slices.Clone(d.Tokens)
			out.Directives[i] = d
		}
	}

	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			out.Rules[id] = rc.clone()
		}
	}
	return &out
}

func (rc RuleConfig) clone() RuleConfig {
	if rc.Enabled != nil {
		v := *rc.Enabled
		rc.Enabled = &v
	}
	if rc.Severity != nil {
		v := *rc.Severity
		rc.Severity = &v
	}
	rc.Options = maps.Clone(rc.Options)
	return rc
}
