// Package config defines core configuration types for razorlint.
// These types are pure data structures with no dependency on a config loader.
package config

import "slices"

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank orders severities: info < warning < error. Unknown severities rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// DirectiveTokenConfig declares one argument of a custom directive.
type DirectiveTokenConfig struct {
	// Kind is one of "type", "namespace", "member" or "string".
	Kind     string `mapstructure:"kind" yaml:"kind"`
	Optional bool   `mapstructure:"optional" yaml:"optional,omitempty"`
}

// DirectiveConfig declares a custom directive.
type DirectiveConfig struct {
	Name string `mapstructure:"name" yaml:"name"`

	// Kind is one of "single-line", "razor-block" or "code-block".
	Kind   string                 `mapstructure:"kind" yaml:"kind,omitempty"`
	Tokens []DirectiveTokenConfig `mapstructure:"tokens" yaml:"tokens,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatSummary:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "empty-code-block"
	RuleFormatID       RuleFormat = "id"       // "RZL001"
	RuleFormatCombined RuleFormat = "combined" // "RZL001/empty-code-block"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows rules table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// DefaultExtensions are the file extensions treated as templates.
func DefaultExtensions() []string {
	return []string{".cshtml", ".vbhtml", ".razor"}
}

// Config is the root configuration structure for razorlint.
type Config struct {
	// DesignTime keeps whitespace in markup instead of handing it to code blocks.
	DesignTime bool `mapstructure:"design_time" yaml:"design_time"`

	// LanguageVersion selects the grammar revision ("1.0", "1.1", "2.0", "latest").
	LanguageVersion string `mapstructure:"language_version" yaml:"language_version"`

	// Directives registers custom directives.
	Directives []DirectiveConfig `mapstructure:"directives" yaml:"directives,omitempty"`

	// Extensions lists the file extensions that are linted.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID or name.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules,omitempty"`

	// Diagnostics overrides the severity of parser diagnostics, keyed by
	// kind code ("RZ1006") or name ("expected-end-of-block-before-eof").
	// The value "off" suppresses the diagnostic.
	Diagnostics map[string]string `mapstructure:"diagnostics" yaml:"diagnostics,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `mapstructure:"-" yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `mapstructure:"-" yaml:"-"`
}

// DiagnosticOff is the Diagnostics value that suppresses a parser diagnostic.
const DiagnosticOff = "off"

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LanguageVersion: "latest",
		Extensions:      DefaultExtensions(),
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Diagnostics:     make(map[string]string),
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}

// HasExtension reports whether ext is one of the configured template extensions.
func (c *Config) HasExtension(ext string) bool {
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	return slices.Contains(exts, ext)
}
