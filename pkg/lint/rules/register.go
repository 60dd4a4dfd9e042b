package rules

import (
	"github.com/yaklabco/razorlint/pkg/config"
	"github.com/yaklabco/razorlint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewEmptyCodeBlockRule())           // RZL001
	registry.Register(NewDuplicateSectionRule())         // RZL002
	registry.Register(NewUnquotedDynamicAttributeRule()) // RZL003
	registry.Register(NewInlineMarkupLineRule())         // RZL004
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = lint.DefaultRegistry.Infos
}
