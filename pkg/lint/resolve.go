package lint

import (
	"slices"

	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/diag"
)

// ResolvedRule is a rule with its settings for one run. Config is nil when
// the configuration has no entry for the rule.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	Config   *config.RuleConfig
}

// severityPinner is implemented by rules built on BaseRule.
type severityPinner interface {
	SeverityPinned() bool
}

// ResolveRules returns the enabled rules of registry in ID order.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var out []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolveRule(rule, cfg); rr.Enabled {
			out = append(out, rr)
		}
	}
	return out
}

// resolveRule applies, lowest precedence first: the rule's own defaults,
// severity_default for rules without a pinned severity, the rules entry
// (by ID, else by name), then --enable and --disable.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{Rule: rule, Enabled: rule.DefaultEnabled(), Severity: rule.DefaultSeverity()}
	if cfg == nil {
		return rr
	}

	if p, ok := rule.(severityPinner); ok && !p.SeverityPinned() {
		if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
			rr.Severity = sev
		}
	}

	entry, ok := cfg.Rules[rule.ID()]
	if !ok {
		entry, ok = cfg.Rules[rule.Name()]
	}
	if ok {
		rr.Config = &entry
		if entry.Enabled != nil {
			rr.Enabled = *entry.Enabled
		}
		if entry.Severity != nil {
			rr.Severity = config.Severity(*entry.Severity)
		}
	}

	named := func(keys []string) bool {
		return slices.Contains(keys, rule.ID()) || slices.Contains(keys, rule.Name())
	}
	if named(cfg.EnableRules) {
		rr.Enabled = true
	}
	if named(cfg.DisableRules) {
		rr.Enabled = false
	}

	if rr.Severity == "" {
		rr.Severity = config.SeverityWarning
	}
	return rr
}

// ResolveDiagnosticSeverity reports how a parser diagnostic kind is
// surfaced. Kinds are errors unless the diagnostics map names them by code
// or by name; "off" hides them and unknown values are ignored.
func ResolveDiagnosticSeverity(cfg *config.Config, kind diag.Kind) (config.Severity, bool) {
	if cfg == nil {
		return config.SeverityError, true
	}

	value, ok := cfg.Diagnostics[string(kind)]
	if !ok {
		value, ok = cfg.Diagnostics[kind.Name()]
	}
	switch sev := config.Severity(value); {
	case !ok:
		return config.SeverityError, true
	case value == config.DiagnosticOff:
		return "", false
	case sev.IsValid():
		return sev, true
	default:
		return config.SeverityError, true
	}
}
