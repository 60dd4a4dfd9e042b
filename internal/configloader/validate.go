package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/diag"
	"github.com/yaklabco/razorlint/pkg/lint"
	"github.com/yaklabco/razorlint/pkg/parser"
	"github.com/yaklabco/razorlint/pkg/parser/razor"
)

const (
	severityChoices = "error, warning, info"
	formatChoices   = "text, json, sarif, summary"
)

// ValidationError is one problem with a configuration value. Field uses
// the YAML key path, e.g. "rules.RZL001.severity" or "ignore[2]".
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.File, e.Field, e.Message} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ": ")
}

// ValidationResult separates fatal problems from ones that are only
// reported, like unknown rule names.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) fail(field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg against the built-in rules.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks cfg, looking rule keys up in registry. With a
// nil registry unknown rules are not reported.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		r.fail("severity_default", "invalid severity %q; must be one of: %s", cfg.SeverityDefault, severityChoices)
	}
	if _, err := parser.ParseVersion(cfg.LanguageVersion); err != nil {
		r.fail("language_version", "invalid language version %q; must be one of: 1.0, 1.1, 2.0, latest",
			cfg.LanguageVersion)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		r.fail("format", "invalid format %q; must be one of: %s", cfg.Format, formatChoices)
	}
	ruleFormats := []config.RuleFormat{config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined}
	if cfg.RuleFormat != "" && !slices.Contains(ruleFormats, cfg.RuleFormat) {
		r.fail("rule_format", "invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		r.fail("jobs", "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			r.fail(fmt.Sprintf("extensions[%d]", i), "extension %q must start with a dot", ext)
		}
	}
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			r.fail(fmt.Sprintf("ignore[%d]", i), "invalid glob pattern %q", pattern)
		}
	}

	r.checkDirectives(cfg.Directives)
	r.checkRules(cfg, registry)
	r.checkDiagnostics(cfg.Diagnostics)
	return r
}

func (r *ValidationResult) checkDirectives(directives []config.DirectiveConfig) {
	declared := make(map[string]bool, len(directives))
	builtins := parser.DefaultOptions()
	for i, dc := range directives {
		field := fmt.Sprintf("directives[%d]", i)
		if _, err := razor.DirectiveFromConfig(dc); err != nil {
			r.fail(field, "%v", err)
			continue
		}
		if declared[dc.Name] {
			r.fail(field, "directive %q is declared more than once", dc.Name)
		}
		declared[dc.Name] = true
		if parser.IsDirective(dc.Name, builtins) {
			r.warn(field, "directive %q shadows a built-in directive", dc.Name)
		}
	}
}

func (r *ValidationResult) checkRules(cfg *config.Config, registry *lint.Registry) {
	known := func(key string) bool {
		if registry == nil {
			return true
		}
		_, ok := registry.Get(key)
		return ok
	}

	for key, rc := range cfg.Rules {
		if !known(key) {
			r.warn("rules."+key, "unknown rule %q; it will be ignored", key)
		}
		if rc.Severity != nil && !config.Severity(*rc.Severity).IsValid() {
			r.fail("rules."+key+".severity", "invalid severity %q; must be one of: %s", *rc.Severity, severityChoices)
		}
	}

	// --enable and --disable also take parser diagnostic kinds.
	for _, key := range slices.Concat(cfg.EnableRules, cfg.DisableRules) {
		if _, isKind := diag.KindByName(key); !isKind && !known(key) {
			r.warn("rules", "unknown rule %q; it will be ignored", key)
		}
	}
}

func (r *ValidationResult) checkDiagnostics(overrides map[string]string) {
	for key, value := range overrides {
		field := "diagnostics." + key
		if _, ok := diag.KindByName(key); !ok {
			r.warn(field, "unknown diagnostic %q; it will be ignored", key)
		}
		if value != config.DiagnosticOff && !config.Severity(value).IsValid() {
			r.fail(field, "invalid value %q; must be one of: %s, off", value, severityChoices)
		}
	}
}
