package configloader

import (
	"maps"

	"github.com/yaklabco/razorlint/pkg/config"
)

// MergeAll layers configs left to right. Later layers win field by field:
// non-zero scalars and non-nil slices replace, maps are merged key by key.
// Nil layers are skipped and inputs are never mutated.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, layer := range configs {
		out = merge(out, layer)
	}
	return out
}

func merge(base, layer *config.Config) *config.Config {
	if base == nil {
		return layer.Clone()
	}
	if layer == nil {
		return base
	}

	out := *base
	setIfSet(&out.LanguageVersion, layer.LanguageVersion)
	setIfSet(&out.SeverityDefault, layer.SeverityDefault)
	setIfSet(&out.Format, layer.Format)
	setIfSet(&out.RuleFormat, layer.RuleFormat)
	setIfSet(&out.Jobs, layer.Jobs)

	// A later layer can switch design time on but not off.
	out.DesignTime = base.DesignTime || layer.DesignTime

	replaceIfSet(&out.Directives, layer.Directives)
	replaceIfSet(&out.Extensions, layer.Extensions)
	replaceIfSet(&out.Ignore, layer.Ignore)
	replaceIfSet(&out.EnableRules, layer.EnableRules)
	replaceIfSet(&out.DisableRules, layer.DisableRules)

	out.Rules = overlay(base.Rules, layer.Rules, mergeRule)
	out.Diagnostics = overlay(base.Diagnostics, layer.Diagnostics, func(_, v string) string { return v })
	return &out
}

func setIfSet[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func replaceIfSet[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

// overlay returns a fresh map holding base with layer merged over it.
func overlay[K comparable, V any](base, layer map[K]V, combine func(old, v V) V) map[K]V {
	if base == nil && layer == nil {
		return nil
	}
	out := make(map[K]V, len(base)+len(layer))
	maps.Copy(out, base)
	for k, v := range layer {
		if old, ok := out[k]; ok {
			v = combine(old, v)
		}
		out[k] = v
	}
	return out
}

func mergeRule(base, layer config.RuleConfig) config.RuleConfig {
	out := base
	if layer.Enabled != nil {
		out.Enabled = layer.Enabled
	}
	if layer.Severity != nil {
		out.Severity = layer.Severity
	}
	if layer.Options != nil {
		out.Options = overlay(base.Options, layer.Options, func(_, v any) any { return v })
	}
	return out
}
